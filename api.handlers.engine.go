package main

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// LoginRequest is the payload expected by the login endpoint.
type LoginRequest struct {
	User string `json:"user"`
	Host string `json:"host"`
}

// Login checks the provided identity against the registered users list
// and opens an informational session for it. An unregistered user is
// rejected with the dedicated message.
func (api *APIHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	var login LoginRequest
	if err := DecodeJSONBody(r, &login); err != nil {
		api.logger.Error("failed to login", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to login", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if len(login.User) == 0 || len(login.Host) == 0 {
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to login", "user and host are required")
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	identity := Identity{Name: login.User, Host: login.Host}
	if !api.authorizer.Registered(identity) {
		api.logger.Error("login rejected", zap.String("user", identity.String()), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusForbidden, ErrUserNotRegistered.Error(), identity)
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	session := api.idsHandler.Generate(SessionIDPrefix)
	api.sessions.Store(session, identity.String())
	api.logger.Info("login succeeded", zap.String("user", identity.String()), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Login succeeded.", nil,
		map[string]string{"session": session, "user": identity.String()},
	)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// ExecuteCommands is the generic engine front door. It dispatches the
// submitted batch through the processing pipeline and returns the full
// per-command report whatever the individual outcomes are.
func (api *APIHandler) ExecuteCommands(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	var batch []Command
	if err := DecodeJSONBody(r, &batch); err != nil {
		api.logger.Error("failed to decode commands batch", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to decode the commands batch", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if len(batch) == 0 {
		errResp := NewAPIError(requestID, http.StatusBadRequest, "empty commands batch", EmptyData)
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	report := api.pipeline.Process(r.Context(), IdentityFromContext(r.Context()), batch)
	api.logger.Info("commands batch processed",
		zap.String("request.id", requestID),
		zap.Int("batch.executed", report.Executed),
		zap.Int("batch.failed", report.Failed),
		zap.Int("batch.skipped", report.Skipped),
	)
	total := len(report.Results)
	message := fmt.Sprintf("Commands batch processed: %d executed, %d failed, %d skipped.", report.Executed, report.Failed, report.Skipped)
	resp := GenericResponse(requestID, http.StatusOK, message, &total, report)
	if err := WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
