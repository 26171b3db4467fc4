// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-laborlaw-be/internal/dto"
	"ai-laborlaw-be/internal/model"
	"ai-laborlaw-be/internal/repository"
	"ai-laborlaw-be/pkg/report"
	"ai-laborlaw-be/pkg/workflow"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	sessionRepo repository.ISessionRepository
	archiveRepo repository.ConsultationArchiveRepository
	assembler   *report.Assembler
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessionRepo repository.ISessionRepository,
	archiveRepo repository.ConsultationArchiveRepository,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		sessionRepo: sessionRepo,
		archiveRepo: archiveRepo,
		assembler:   report.NewAssembler(),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ArchiveSessionMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal archive message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.archiveRepo == nil {
		log.Printf("[WARN] No archive database configured, dropping archive for session %s", payload.SessionId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Archiving consultation session %s", payload.SessionId)

	session, err := cs.sessionRepo.Get(ctx, payload.SessionId)
	if err != nil {
		// Session expired from the cache before the consumer ran. Nothing to
		// retry against.
		log.Printf("[ERROR] Session not found for archive: %s (%v)", payload.SessionId, err)
		msg.Ack()
		return
	}

	archive, err := cs.buildArchive(session)
	if err != nil {
		log.Printf("[ERROR] Failed to build archive for session %s: %v", payload.SessionId, err)
		msg.Ack()
		return
	}

	if err := cs.archiveRepo.Save(ctx, archive); err != nil {
		log.Printf("[ERROR] Failed to save archive for session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[SUCCESS] Consultation archived: %s", payload.SessionId)
	msg.Ack()
}

func (cs *consumerService) buildArchive(session *workflow.Session) (*model.ConsultationArchive, error) {
	doc := cs.assembler.Assemble(report.Input{
		CaseID:    session.ID,
		Profile:   session.Profile,
		Checklist: session.Checklist,
		Records:   session.Records,
		Messages:  reportMessages(session),
	})

	archive := &model.ConsultationArchive{
		ID:            uuid.New(),
		SessionID:     session.ID,
		StrengthLevel: string(doc.Legal.StrengthLevel),
		StrengthScore: doc.Legal.StrengthScore,
		CreatedAt:     time.Now(),
	}
	if session.Profile != nil {
		archive.EmployeeName = session.Profile.EmployeeName
		archive.CompanyName = session.Profile.CompanyName
		archive.DisputeCategory = string(session.Profile.DisputeCategory)
	}

	for _, col := range []struct {
		dst *datatypes.JSON
		src interface{}
	}{
		{&archive.Profile, session.Profile},
		{&archive.Checklist, session.Checklist},
		{&archive.Records, session.Records},
		{&archive.Transcript, session.Messages},
		{&archive.Report, doc},
	} {
		data, err := json.Marshal(col.src)
		if err != nil {
			return nil, err
		}
		*col.dst = datatypes.JSON(data)
	}

	return archive, nil
}

func reportMessages(session *workflow.Session) []report.ChatMessage {
	msgs := make([]report.ChatMessage, 0, len(session.Messages))
	for _, m := range session.Messages {
		msgs = append(msgs, report.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return msgs
}
