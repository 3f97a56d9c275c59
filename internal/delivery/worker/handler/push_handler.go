// Package handler contains the push endpoint of the activity worker.
package handler

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"taskmanager/config"
	deliverycontext "taskmanager/internal/delivery/context"
	"taskmanager/internal/domain/constants"
	"taskmanager/internal/domain/service"
	"taskmanager/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler records task events delivered by Pub/Sub push or by the local publisher.
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	pushToken      string
	validateToken  tokenValidator
	logger         *slog.Logger
	activityUC     usecase.TaskActivityUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	ActivityUC usecase.TaskActivityUsecase
}

// NewPushHandler creates a new Pub/Sub push handler.
// Google push requests carry an OIDC token. Everything else must present pubsub.pushToken,
// which is only optional in local runs.
func NewPushHandler(params PushHandlerParams) (*PushHandler, error) {
	pubsubCfg := params.Config.PubSub
	if pubsubCfg == nil {
		pubsubCfg = &config.PubSubConfig{}
	}
	isLocal := params.Config.Env.Env == constants.EnvLocal
	verifyPushAuth := pubsubCfg.Provider == constants.PubSubProviderGoogle && !isLocal

	if !verifyPushAuth && pubsubCfg.PushToken == "" && !isLocal {
		return nil, errors.New("pubsub.pushToken is required outside local unless the provider is google")
	}

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		audience:       pubsubCfg.PushAudience,
		pushToken:      pubsubCfg.PushToken,
		validateToken:  idtoken.Validate,
		logger:         params.Logger,
		activityUC:     params.ActivityUC,
	}, nil
}

// HandlePush handles incoming Pub/Sub push messages.
// 2xx acknowledges the message; 503 asks for redelivery.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.authenticate(c.Request()); err != nil {
		h.logger.Warn("[Worker] Rejected push request", slog.Any("error", err))

		return c.NoContent(http.StatusUnauthorized)
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.TaskEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse task event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if event.RequestID == "" {
		event.RequestID = requestID
	}

	if err := h.activityUC.RecordTaskEvent(ctx, pushMsg.Message.MessageID, &event); err != nil {
		if errors.Is(err, usecase.ErrInvalidEvent) {
			// Redelivery cannot fix it, acknowledge and drop.
			reqLogger.Warn("[Worker] Dropping task event",
				slog.String("message_id", pushMsg.Message.MessageID),
				slog.Any("error", err),
			)

			return c.NoContent(http.StatusOK)
		}

		reqLogger.Error("[Worker] Failed to record task event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.TaskEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	// Set by RequestIDMiddleware from X-Request-Id
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func (h *PushHandler) authenticate(req *http.Request) error {
	switch {
	case h.verifyPushAuth:
		return h.verifyPubSubToken(req)
	case h.pushToken != "":
		return h.verifySharedToken(req)
	default:
		return nil
	}
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("invalid authorization header format")
	}

	return strings.TrimPrefix(authHeader, bearerPrefix), nil
}

func (h *PushHandler) verifySharedToken(req *http.Request) error {
	token, err := bearerToken(req)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.pushToken)) != 1 {
		return errors.New("push token mismatch")
	}

	return nil
}

// verifyPubSubToken validates the OIDC token Google attaches to push requests.
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	token, err := bearerToken(req)
	if err != nil {
		return err
	}

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = scheme + "://" + req.Host + req.URL.Path
	}

	payload, err := h.validateToken(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
