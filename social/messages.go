package social

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MimansaPatle/pictogram/domain"
	"github.com/google/uuid"
)

// conversationScanDepth bounds how far back the conversation overview
// looks when grouping messages per peer.
const conversationScanDepth = 500

// SendMessage delivers a direct message, optionally sharing a post or
// replying to a story. Blocks in either direction stop delivery.
func (s *Service) SendMessage(senderId, recipientId uuid.UUID, content string, postId, storyId uuid.NullUUID) (*domain.Message, error) {
	if senderId == recipientId {
		return nil, fmt.Errorf("cannot message yourself: %w", domain.ErrInvalidState)
	}
	if _, err := s.readUser(recipientId); err != nil {
		return nil, err
	}
	err, blocked := s.store.BlockExistsEither(senderId, recipientId)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, fmt.Errorf("user %s: %w", recipientId, domain.ErrForbidden)
	}
	if postId.Valid {
		if _, err := s.readPost(postId.UUID); err != nil {
			return nil, err
		}
	}
	if storyId.Valid {
		if _, err := s.readStory(storyId.UUID); err != nil {
			return nil, err
		}
	}

	message := &domain.Message{
		Id:          uuid.New(),
		SenderId:    senderId,
		RecipientId: recipientId,
		Content:     content,
		PostId:      postId,
		StoryId:     storyId,
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreateMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversations returns the caller's conversation overview: the most
// recent message per peer with the unread count, newest first.
func (s *Service) Conversations(callerId uuid.UUID) ([]domain.Conversation, error) {
	err, messages := s.store.ReadMessagesInvolving(callerId, conversationScanDepth)
	if err != nil {
		return nil, err
	}

	lastByPeer := map[uuid.UUID]*domain.Message{}
	var peerOrder []uuid.UUID
	for i := range *messages {
		message := &(*messages)[i]
		peerId := message.SenderId
		if peerId == callerId {
			peerId = message.RecipientId
		}
		if _, ok := lastByPeer[peerId]; ok {
			continue
		}
		// Messages arrive newest first, so the first hit is the latest
		lastByPeer[peerId] = message
		peerOrder = append(peerOrder, peerId)
	}

	err, peers := s.store.ReadUsersByIds(peerOrder)
	if err != nil {
		return nil, err
	}
	peerById := map[uuid.UUID]domain.User{}
	for _, peer := range *peers {
		peerById[peer.Id] = peer
	}

	conversations := make([]domain.Conversation, 0, len(peerOrder))
	for _, peerId := range peerOrder {
		peer, ok := peerById[peerId]
		if !ok {
			continue
		}
		err, unread := s.store.CountUnreadMessagesFrom(peerId, callerId)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, domain.Conversation{
			UserId:      peer.Id,
			Username:    peer.Username,
			DisplayName: peer.DisplayName,
			PhotoURL:    peer.PhotoURL,
			LastMessage: lastByPeer[peerId],
			UnreadCount: unread,
		})
	}
	return conversations, nil
}

// ConversationMessages returns one page of the history with a peer,
// oldest first, and marks the peer's messages as read.
func (s *Service) ConversationMessages(callerId, peerId uuid.UUID, skip, limit int) ([]domain.Message, error) {
	if _, err := s.readUser(peerId); err != nil {
		return nil, err
	}
	err, messages := s.store.ReadMessagesBetween(callerId, peerId, skip, limit)
	if err != nil {
		return nil, err
	}
	if err := s.store.MarkConversationRead(peerId, callerId); err != nil {
		return nil, err
	}
	return *messages, nil
}

func (s *Service) readMessage(id uuid.UUID) (*domain.Message, error) {
	err, message := s.store.ReadMessageById(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return message, nil
}

// MarkMessageRead marks a single message as read. Only the recipient
// may do so.
func (s *Service) MarkMessageRead(callerId, messageId uuid.UUID) error {
	message, err := s.readMessage(messageId)
	if err != nil {
		return err
	}
	if message.RecipientId != callerId {
		return fmt.Errorf("message %s: %w", messageId, domain.ErrForbidden)
	}
	return s.store.MarkMessageRead(messageId)
}

// DeleteMessage removes a single message. Only the sender may do so.
func (s *Service) DeleteMessage(callerId, messageId uuid.UUID) error {
	message, err := s.readMessage(messageId)
	if err != nil {
		return err
	}
	if message.SenderId != callerId {
		return fmt.Errorf("message %s: %w", messageId, domain.ErrForbidden)
	}
	return s.store.DeleteMessage(messageId)
}
