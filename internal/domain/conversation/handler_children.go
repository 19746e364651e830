package conversation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
	"github.com/ehr/prescribeit/pkg/response"
	"github.com/ehr/prescribeit/pkg/validate"
)

// childIDs parses the conversation id and, when name is set, a child id.
func childIDs(c echo.Context, name string) (int64, int64, error) {
	conversationID, err := validate.PathID(c, "conversationId")
	if err != nil {
		return 0, 0, err
	}
	if name == "" {
		return conversationID, 0, nil
	}
	childID, err := validate.PathID(c, name)
	if err != nil {
		return 0, 0, err
	}
	return conversationID, childID, nil
}

// bodyConversation checks that a body's conversationId, when present,
// agrees with the path.
func bodyConversation(path, body int64) error {
	if body == 0 {
		return nil
	}
	return validate.MatchIDs("conversationId", path, body)
}

func listPage(c echo.Context) (int64, pagination.Params, error) {
	id, _, err := childIDs(c, "")
	if err != nil {
		return 0, pagination.Params{}, err
	}
	p, err := pagination.FromContext(c)
	return id, p, err
}

// -- Messages --

func (h *Handler) ListMessages(c echo.Context) error {
	id, p, err := listPage(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListMessages(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(m *Message) int64 { return m.MessageID }, messageToDto))
}

func (h *Handler) GetMessage(c echo.Context) error {
	conversationID, messageID, err := childIDs(c, "messageId")
	if err != nil {
		return err
	}
	m, err := h.svc.GetMessage(c.Request().Context(), conversationID, messageID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, messageToDto(m))
}

func (h *Handler) CreateMessage(c echo.Context) error {
	conversationID, _, err := childIDs(c, "")
	if err != nil {
		return err
	}
	var dto ConversationMessageDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := bodyConversation(conversationID, dto.ConversationID); err != nil {
		return err
	}
	m := messageFromDto(dto)
	m.ConversationID = conversationID

	id, err := h.svc.CreateMessage(c.Request().Context(), m)
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) UpdateMessage(c echo.Context) error {
	conversationID, messageID, err := childIDs(c, "messageId")
	if err != nil {
		return err
	}
	var dto ConversationMessageDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("messageId", messageID, dto.MessageID); err != nil {
		return err
	}
	if err := bodyConversation(conversationID, dto.ConversationID); err != nil {
		return err
	}
	m := messageFromDto(dto)
	m.ConversationID = conversationID

	if err := h.svc.UpdateMessage(c.Request().Context(), m); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteMessage(c echo.Context) error {
	conversationID, messageID, err := childIDs(c, "messageId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMessage(c.Request().Context(), conversationID, messageID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Participants --

func (h *Handler) ListParticipants(c echo.Context) error {
	id, p, err := listPage(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListParticipants(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(pt *Participant) int64 { return pt.ParticipantID }, participantToDto))
}

func (h *Handler) CreateParticipant(c echo.Context) error {
	conversationID, _, err := childIDs(c, "")
	if err != nil {
		return err
	}
	var dto ConversationParticipantDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := bodyConversation(conversationID, dto.ConversationID); err != nil {
		return err
	}
	pt := participantFromDto(dto)
	pt.ConversationID = conversationID

	id, err := h.svc.AddParticipant(c.Request().Context(), pt)
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) DeleteParticipant(c echo.Context) error {
	conversationID, participantID, err := childIDs(c, "participantId")
	if err != nil {
		return err
	}
	if err := h.svc.RemoveParticipant(c.Request().Context(), conversationID, participantID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Attachments --

func (h *Handler) ListAttachments(c echo.Context) error {
	id, p, err := listPage(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListAttachments(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(a *Attachment) int64 { return a.AttachmentID }, attachmentToDto))
}

func (h *Handler) GetAttachment(c echo.Context) error {
	conversationID, attachmentID, err := childIDs(c, "attachmentId")
	if err != nil {
		return err
	}
	a, err := h.svc.GetAttachment(c.Request().Context(), conversationID, attachmentID)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, attachmentToDto(a))
}

func (h *Handler) CreateAttachment(c echo.Context) error {
	conversationID, _, err := childIDs(c, "")
	if err != nil {
		return err
	}
	var dto ConversationAttachmentDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := bodyConversation(conversationID, dto.ConversationID); err != nil {
		return err
	}
	a := attachmentFromDto(dto)
	a.ConversationID = conversationID

	id, err := h.svc.CreateAttachment(c.Request().Context(), a)
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) DeleteAttachment(c echo.Context) error {
	conversationID, attachmentID, err := childIDs(c, "attachmentId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAttachment(c.Request().Context(), conversationID, attachmentID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Statuses --

func (h *Handler) ListStatuses(c echo.Context) error {
	id, p, err := listPage(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListStatuses(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(s *Status) int64 { return s.StatusID }, statusToDto))
}

func (h *Handler) CreateStatus(c echo.Context) error {
	conversationID, _, err := childIDs(c, "")
	if err != nil {
		return err
	}
	var dto ConversationStatusDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := bodyConversation(conversationID, dto.ConversationID); err != nil {
		return err
	}
	st := statusFromDto(dto)
	st.ConversationID = conversationID

	id, err := h.svc.ChangeStatus(c.Request().Context(), st)
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

// -- Links --

func listLinks[T any](h *Handler, kind LinkKind, toDto func(*Link) T) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, p, err := listPage(c)
		if err != nil {
			return err
		}
		items, total, err := h.svc.ListLinks(c.Request().Context(), kind, id, p)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
			func(l *Link) int64 { return l.TargetID }, toDto))
	}
}

func (h *Handler) link(kind LinkKind, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		conversationID, targetID, err := childIDs(c, param)
		if err != nil {
			return err
		}
		if err := h.svc.Link(c.Request().Context(), kind, conversationID, targetID); err != nil {
			return apperr.HTTP(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func (h *Handler) unlink(kind LinkKind, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		conversationID, targetID, err := childIDs(c, param)
		if err != nil {
			return err
		}
		if err := h.svc.Unlink(c.Request().Context(), kind, conversationID, targetID); err != nil {
			return apperr.HTTP(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
