package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/logger"
	"github.com/angelmondragon/scent-storefront/pkg/types"
)

// NoticeSource yields the notices queued for the visitor since the last response.
type NoticeSource interface {
	Drain() []types.Notice
}

type noticesKey struct{}

// WithNotices attaches the visitor's notice queue so every envelope written for the
// request carries the pending notices.
func WithNotices(ctx context.Context, src NoticeSource) context.Context {
	return context.WithValue(ctx, noticesKey{}, src)
}

func drainNotices(ctx context.Context) []types.Notice {
	if ctx == nil {
		return nil
	}
	src, ok := ctx.Value(noticesKey{}).(NoticeSource)
	if !ok || src == nil {
		return nil
	}
	return src.Drain()
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, data any) {
	WriteSuccessStatus(ctx, w, http.StatusOK, data)
}

func WriteSuccessStatus(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data, Notices: drainNotices(ctx)})
}

// WriteRedirect answers an action that navigates the visitor to target.
func WriteRedirect(ctx context.Context, w http.ResponseWriter, data any, target string) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Data: data, Notices: drainNotices(ctx), Redirect: target})
}

func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeRateLimit,
		pkgerrors.CodeDependency:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(typed.Code()),
			Message: msg,
		},
		Notices:  drainNotices(ctx),
		Redirect: RedirectOf(err),
	}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":       dump.TopMessage,
			"error_code":  dump.Code,
			"error_chain": dump.Chain,
		}
		if dump.BackendStatus != 0 {
			fields["backend_status"] = dump.BackendStatus
			fields["backend_message"] = dump.BackendMessage
			fields["backend_path"] = dump.BackendPath
		}

		ctx = logg.WithFields(ctx, fields)
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(ctx, "request.error")
		}
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

// RedirectOf returns the navigation target carried in an error's details, if any.
func RedirectOf(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return ""
	}
	switch details := typed.Details().(type) {
	case map[string]any:
		target, _ := details["redirect"].(string)
		return target
	case map[string]string:
		return details["redirect"]
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
