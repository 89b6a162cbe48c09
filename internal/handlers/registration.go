package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/iftar-registration/internal/ledger"
	"github.com/gdg-garage/iftar-registration/internal/models"
	"github.com/gdg-garage/iftar-registration/internal/registration"
)

type RegistrationHandler struct {
	registrar *registration.Registrar
	store     ledger.Store
}

func NewRegistrationHandler(registrar *registration.Registrar, store ledger.Store) *RegistrationHandler {
	return &RegistrationHandler{registrar: registrar, store: store}
}

type RegistrationRequest struct {
	Body struct {
		Name           string            `json:"name" doc:"Student name" minLength:"1"`
		StudentID      string            `json:"student_id" doc:"Student ID" minLength:"1"`
		Department     models.Department `json:"department" doc:"Department" enum:"Data Science,AI,Cyber,Healthcare,Media"`
		Level          models.Level      `json:"level" doc:"Study level" minimum:"1" maximum:"4"`
		PrimaryMeal    models.Meal       `json:"primary_meal" doc:"Meal of the registrant" enum:"Meat,Chicken,Syamii"`
		CompanionCount int               `json:"companion_count,omitempty" doc:"Number of companions" minimum:"0"`
		CompanionMeals []models.Meal     `json:"companion_meals,omitempty" doc:"One meal per companion"`
	}
}

type RegistrationResponse struct {
	Body struct {
		Message      string              `json:"message"`
		Registration models.Registration `json:"registration"`
	}
}

func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	form := registration.Form{
		Name:           input.Body.Name,
		StudentID:      input.Body.StudentID,
		Department:     input.Body.Department,
		Level:          input.Body.Level,
		PrimaryMeal:    input.Body.PrimaryMeal,
		CompanionCount: input.Body.CompanionCount,
		CompanionMeals: input.Body.CompanionMeals,
	}

	reg, err := h.registrar.Submit(ctx, form)
	if err != nil {
		return nil, apiError(err)
	}

	res := &RegistrationResponse{}
	res.Body.Message = fmt.Sprintf("Registration successful, ticket number %d", reg.TicketNumber)
	res.Body.Registration = reg
	return res, nil
}

type LedgerResponse struct {
	Body struct {
		Count         int                   `json:"count"`
		Registrations []models.Registration `json:"registrations"`
	}
}

func (h *RegistrationHandler) HandleList(ctx context.Context, input *struct{}) (*LedgerResponse, error) {
	return h.ledgerResponse(ctx)
}

type DeleteLastResponse struct {
	Body struct {
		Message       string                `json:"message"`
		Removed       models.Registration   `json:"removed"`
		Registrations []models.Registration `json:"registrations"`
	}
}

func (h *RegistrationHandler) HandleDeleteLast(ctx context.Context, input *struct{}) (*DeleteLastResponse, error) {
	removed, err := h.registrar.DeleteLast(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	regs, err := h.store.Load(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	res := &DeleteLastResponse{}
	res.Body.Message = fmt.Sprintf("Last record deleted (ticket %d)", removed.TicketNumber)
	res.Body.Removed = removed
	res.Body.Registrations = regs
	return res, nil
}

func (h *RegistrationHandler) HandleClearAll(ctx context.Context, input *struct{}) (*LedgerResponse, error) {
	if err := h.registrar.ClearAll(ctx); err != nil {
		return nil, apiError(err)
	}
	return h.ledgerResponse(ctx)
}

func (h *RegistrationHandler) ledgerResponse(ctx context.Context) (*LedgerResponse, error) {
	regs, err := h.store.Load(ctx)
	if err != nil {
		return nil, apiError(err)
	}

	res := &LedgerResponse{}
	res.Body.Count = len(regs)
	res.Body.Registrations = regs
	return res, nil
}

func apiError(err error) error {
	var verr *registration.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.Error422UnprocessableEntity("Invalid registration", &huma.ErrorDetail{
			Message:  verr.Message,
			Location: "body." + verr.Field,
			Value:    verr.Value,
		})
	case errors.Is(err, ledger.ErrEmptyLedger):
		return huma.Error404NotFound("Ledger is empty, nothing to delete")
	case errors.Is(err, ledger.ErrStorageRead):
		return huma.Error500InternalServerError("Failed to read ledger: " + err.Error())
	case errors.Is(err, ledger.ErrStorageWrite):
		return huma.Error500InternalServerError("Failed to save ledger: " + err.Error())
	default:
		return huma.Error500InternalServerError("Failed to process request: " + err.Error())
	}
}
