package conversation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/platform/auth"
	"github.com/ehr/prescribeit/pkg/pagination"
	"github.com/ehr/prescribeit/pkg/response"
	"github.com/ehr/prescribeit/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	read := g.Group("", auth.RequireRole(auth.Readers...))
	read.GET("/conversation-contacts", h.ListContacts)
	read.GET("/conversation-contacts/:contactId", h.GetContact)
	read.GET("/conversation-contacts/:contactId/users", h.ListContactUsers)
	read.GET("/conversations", h.ListConversations)
	read.GET("/conversations/uuid/:conversationUuid", h.GetConversationByUUID)
	read.GET("/conversations/:conversationId", h.GetConversation)
	read.GET("/conversations/:conversationId/messages", h.ListMessages)
	read.GET("/conversations/:conversationId/messages/:messageId", h.GetMessage)
	read.GET("/conversations/:conversationId/participants", h.ListParticipants)
	read.GET("/conversations/:conversationId/attachments", h.ListAttachments)
	read.GET("/conversations/:conversationId/attachments/:attachmentId", h.GetAttachment)
	read.GET("/conversations/:conversationId/statuses", h.ListStatuses)
	read.GET("/conversations/:conversationId/task-groups", listLinks(h, TaskGroupLink, taskGroupLinkToDto))
	read.GET("/conversations/:conversationId/medications", listLinks(h, MedicationLink, medicationLinkToDto))
	read.GET("/conversations/:conversationId/external-patients", listLinks(h, ExternalPatientLink, externalPatientLinkToDto))

	write := g.Group("", auth.RequireRole(auth.Writers...))
	write.POST("/conversation-contacts", h.CreateContact)
	write.PUT("/conversation-contacts/:contactId", h.UpdateContact)
	write.DELETE("/conversation-contacts/:contactId", h.DeleteContact)
	write.PUT("/conversation-contacts/:contactId/users/:userId", h.LinkContactUser)
	write.DELETE("/conversation-contacts/:contactId/users/:userId", h.UnlinkContactUser)
	write.POST("/conversations", h.CreateConversation)
	write.PUT("/conversations/:conversationId", h.UpdateConversation)
	write.DELETE("/conversations/:conversationId", h.DeleteConversation)
	write.POST("/conversations/:conversationId/messages", h.CreateMessage)
	write.PUT("/conversations/:conversationId/messages/:messageId", h.UpdateMessage)
	write.DELETE("/conversations/:conversationId/messages/:messageId", h.DeleteMessage)
	write.POST("/conversations/:conversationId/participants", h.CreateParticipant)
	write.DELETE("/conversations/:conversationId/participants/:participantId", h.DeleteParticipant)
	write.POST("/conversations/:conversationId/attachments", h.CreateAttachment)
	write.DELETE("/conversations/:conversationId/attachments/:attachmentId", h.DeleteAttachment)
	write.POST("/conversations/:conversationId/statuses", h.CreateStatus)
	write.PUT("/conversations/:conversationId/task-groups/:taskGroupId", h.link(TaskGroupLink, "taskGroupId"))
	write.DELETE("/conversations/:conversationId/task-groups/:taskGroupId", h.unlink(TaskGroupLink, "taskGroupId"))
	write.PUT("/conversations/:conversationId/medications/:prescriptionId", h.link(MedicationLink, "prescriptionId"))
	write.DELETE("/conversations/:conversationId/medications/:prescriptionId", h.unlink(MedicationLink, "prescriptionId"))
	write.PUT("/conversations/:conversationId/external-patients/:externalPatientId", h.link(ExternalPatientLink, "externalPatientId"))
	write.DELETE("/conversations/:conversationId/external-patients/:externalPatientId", h.unlink(ExternalPatientLink, "externalPatientId"))
}

// -- Contacts --

type contactQuery struct {
	Identifier string `query:"identifier" json:"identifier"`
	Service    string `query:"service" json:"service"`
}

func (h *Handler) ListContacts(c echo.Context) error {
	var q contactQuery
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListContacts(c.Request().Context(), ContactFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(ct *Contact) int64 { return ct.ContactID }, contactToDto))
}

func (h *Handler) GetContact(c echo.Context) error {
	id, err := validate.PathID(c, "contactId")
	if err != nil {
		return err
	}
	ct, err := h.svc.GetContact(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, contactToDto(ct))
}

func (h *Handler) CreateContact(c echo.Context) error {
	var dto ConversationContactDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	id, err := h.svc.CreateContact(c.Request().Context(), contactFromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) UpdateContact(c echo.Context) error {
	id, err := validate.PathID(c, "contactId")
	if err != nil {
		return err
	}
	var dto ConversationContactDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("contactId", id, dto.ContactID); err != nil {
		return err
	}
	if err := h.svc.UpdateContact(c.Request().Context(), contactFromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteContact(c echo.Context) error {
	id, err := validate.PathID(c, "contactId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteContact(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListContactUsers(c echo.Context) error {
	id, err := validate.PathID(c, "contactId")
	if err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListContactUsers(c.Request().Context(), id, p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(u *ContactUser) int64 { return u.UserID }, contactUserToDto))
}

func (h *Handler) LinkContactUser(c echo.Context) error {
	contactID, err := validate.PathID(c, "contactId")
	if err != nil {
		return err
	}
	userID, err := validate.PathID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.svc.LinkContactUser(c.Request().Context(), contactID, userID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UnlinkContactUser(c echo.Context) error {
	contactID, err := validate.PathID(c, "contactId")
	if err != nil {
		return err
	}
	userID, err := validate.PathID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.svc.UnlinkContactUser(c.Request().Context(), contactID, userID); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Conversations --

type conversationQuery struct {
	PatientID *int64 `query:"patientId" json:"patientId"`
	Status    string `query:"status" json:"status"`
	Service   string `query:"service" json:"service"`
}

func (h *Handler) ListConversations(c echo.Context) error {
	var q conversationQuery
	if err := validate.Query(c, &q); err != nil {
		return err
	}
	p, err := pagination.FromContext(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.ListConversations(c.Request().Context(), ConversationFilter(q), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(items, total,
		func(cv *Conversation) int64 { return cv.ConversationID }, conversationToDto))
}

func (h *Handler) GetConversation(c echo.Context) error {
	id, err := validate.PathID(c, "conversationId")
	if err != nil {
		return err
	}
	cv, err := h.svc.GetConversation(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, conversationToDto(cv))
}

func (h *Handler) GetConversationByUUID(c echo.Context) error {
	id, err := validate.ParseUUID("conversationUuid", c.Param("conversationUuid"))
	if err != nil {
		return err
	}
	cv, err := h.svc.GetConversationByUUID(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, conversationToDto(cv))
}

func (h *Handler) CreateConversation(c echo.Context) error {
	var dto ConversationDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	id, err := h.svc.CreateConversation(c.Request().Context(), conversationFromDto(dto))
	if err != nil {
		return apperr.HTTP(err)
	}
	return response.Created(c, id)
}

func (h *Handler) UpdateConversation(c echo.Context) error {
	id, err := validate.PathID(c, "conversationId")
	if err != nil {
		return err
	}
	var dto ConversationDto
	if err := validate.Body(c, &dto); err != nil {
		return err
	}
	if err := validate.MatchIDs("conversationId", id, dto.ConversationID); err != nil {
		return err
	}
	if err := h.svc.UpdateConversation(c.Request().Context(), conversationFromDto(dto)); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteConversation(c echo.Context) error {
	id, err := validate.PathID(c, "conversationId")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteConversation(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
