package client

import (
	"Parley/internal/api/dto"
	"Parley/internal/feed"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func writeEnvelope(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.Response{Code: code, Message: message, Data: data})
}

func TestFetchPageChannelScope(t *testing.T) {
	createdAt := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/message", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("workspace_id"))
		assert.Equal(t, "10", r.URL.Query().Get("channel_id"))
		assert.Equal(t, "cur-1", r.URL.Query().Get("cursor"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		writeEnvelope(w, 200, "success", dto.MessagePageDTO{
			Messages: []*dto.MessageDTO{{
				ID:         "m1",
				MemberID:   7,
				MemberName: "raqtpie",
				Body:       "hello",
				ChannelID:  10,
				Reactions:  []dto.ReactionDTO{{Value: "👍", MemberIDs: []uint64{7}}},
				CreatedAt:  createdAt,
			}},
			NextCursor: "cur-2",
			IsLast:     true,
		})
	}))
	defer srv.Close()

	backend := NewApiBackend(srv.URL, "test-token")
	page, err := backend.FetchPage(context.Background(), feed.ChannelScope(1, 10), "cur-1")

	assert.NoError(t, err)
	assert.True(t, page.IsLast)
	assert.Equal(t, "cur-2", page.NextCursor)
	assert.Len(t, page.Messages, 1)

	msg := page.Messages[0]
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, feed.StatusSent, msg.Status)
	assert.Equal(t, []feed.Reaction{{Value: "👍", MemberIDs: []uint64{7}}}, msg.Reactions)
	assert.True(t, msg.CreatedAt.Equal(createdAt))
}

func TestCreateMessageSendsScopeFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/message", r.URL.Path)

		var createDTO dto.CreateMessageDTO
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&createDTO))
		assert.Equal(t, uint64(1), createDTO.WorkspaceID)
		assert.Equal(t, "parent-1", createDTO.ParentMessageID)
		assert.Equal(t, "reply", createDTO.Body)

		writeEnvelope(w, 200, "success", dto.MessageDTO{ID: "srv-9"})
	}))
	defer srv.Close()

	backend := NewApiBackend(srv.URL, "test-token")
	id, err := backend.CreateMessage(context.Background(), feed.ThreadScope(1, "parent-1"), "reply", "")

	assert.NoError(t, err)
	assert.Equal(t, "srv-9", id)
}

func TestBusinessErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 404, "消息不存在", nil)
	}))
	defer srv.Close()

	backend := NewApiBackend(srv.URL, "test-token")
	err := backend.DeleteMessage(context.Background(), "missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "消息不存在")
}

func TestToggleReactionHitsReactionRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/message/m1/reaction", r.URL.Path)

		var reactionDTO dto.ToggleReactionDTO
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reactionDTO))
		assert.Equal(t, "🎉", reactionDTO.Value)

		writeEnvelope(w, 200, "success", nil)
	}))
	defer srv.Close()

	backend := NewApiBackend(srv.URL, "test-token")
	assert.NoError(t, backend.ToggleReaction(context.Background(), "m1", "🎉"))
}
