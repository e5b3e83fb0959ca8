package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// normalizer is implemented by request bodies that trim their fields before validation.
type normalizer interface {
	normalize()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// decodeRequest parses the JSON body into req, trims it and validates it.
// Any failure is returned as a 400 requestError.
func (h *APIHandler) decodeRequest(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return badRequest("Invalid request body: " + err.Error())
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

type CreateSuggestionRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

func (r *CreateSuggestionRequest) normalize() { r.Text = strings.TrimSpace(r.Text) }

type CreateEntryRequest struct {
	Food     string   `json:"food" validate:"required,max=200"`
	Calories *float64 `json:"calories" validate:"required,gte=0"`
	Protein  *float64 `json:"protein" validate:"required,gte=0"`
}

func (r *CreateEntryRequest) normalize() { r.Food = strings.TrimSpace(r.Food) }

// AnalyzePromptRequest keeps prompt_text as sent; it is logged verbatim.
type AnalyzePromptRequest struct {
	PromptText    string `json:"prompt_text" validate:"notblank,max=2000"`
	WalletAddress string `json:"wallet_address"`
}

func (r *AnalyzePromptRequest) normalize() {
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
}

type SaveProfileRequest struct {
	WalletAddress string  `json:"wallet_address" validate:"required"`
	DisplayName   *string `json:"display_name" validate:"omitempty,max=100"`
	Bio           *string `json:"bio" validate:"omitempty,max=1000"`
	AvatarURL     *string `json:"avatar_url" validate:"omitempty,max=2048"`
	Signature     *string `json:"signature"` // accepted, not verified
}

func (r *SaveProfileRequest) normalize() {
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	trimPtr(r.DisplayName)
	trimPtr(r.Bio)
	trimPtr(r.AvatarURL)
}

type CreateConversationRequest struct {
	WalletAddress string  `json:"wallet_address" validate:"required"`
	Title         string  `json:"title" validate:"required,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=1000"`
}

func (r *CreateConversationRequest) normalize() {
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	r.Title = strings.TrimSpace(r.Title)
	trimPtr(r.Description)
}

type PostMessageRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	Message       string `json:"message" validate:"required,max=5000"`
}

func (r *PostMessageRequest) normalize() {
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	r.Message = strings.TrimSpace(r.Message)
}
