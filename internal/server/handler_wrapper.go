// Provides middleware for standardizing HTTP handlers.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hoxhox/tvsource/internal/gitlog"
	"github.com/hoxhox/tvsource/internal/server/dto"
	"github.com/hoxhox/tvsource/internal/server/ratelimit"
	"github.com/hoxhox/tvsource/internal/server/reqctx"
)

// maxBodyBytes bounds any request body; the catalog only ever receives small
// forms and ID lists.
const maxBodyBytes = 1 << 20

var (
	errUnauthorized   = errors.New("unauthorized")
	errInvalidAuthHdr = errors.New("invalid authorization header")
	errInvalidToken   = errors.New("invalid token")
)

// Wrap wraps a handler function to work as an http.Handler.
// The function must have signature: func(context.Context, *In) (*dto.Envelope, error)
// where In binds query parameters via `query` tags, form fields via `form`
// tags and JSON bodies via `json` tags. *In must implement dto.Validatable.
func Wrap[In any, PtrIn interface {
	*In
	dto.Validatable
}](fn func(context.Context, PtrIn) (*dto.Envelope, error)) http.Handler {
	return wrap(fn, nil)
}

// WrapLimited is Wrap with a per-IP rate limit tier in front, used for the
// login endpoint.
func WrapLimited[In any, PtrIn interface {
	*In
	dto.Validatable
}](fn func(context.Context, PtrIn) (*dto.Envelope, error), tier *ratelimit.Limiter) http.Handler {
	return wrap(fn, tier)
}

func wrap[In any, PtrIn interface {
	*In
	dto.Validatable
}](fn func(context.Context, PtrIn) (*dto.Envelope, error), tier *ratelimit.Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := reqctx.WithClientIP(r.Context(), reqctx.GetClientIP(r))

		if !checkRateLimit(ctx, w, tier) {
			return
		}

		input := new(In)
		if !bindRequest(ctx, w, r, input) {
			return
		}
		if err := PtrIn(input).Validate(); err != nil {
			writeError(ctx, w, err)
			return
		}

		env, err := fn(ctx, PtrIn(input))
		writeResult(ctx, w, env, err)
	})
}

// WrapAdmin wraps an admin handler: it validates the Bearer JWT, rate limits
// mutating requests, and commits data file changes to the git log after any
// mutating request (the handler may have written before erroring, and a clean
// worktree commit is a no-op).
func WrapAdmin[In any, PtrIn interface {
	*In
	dto.Validatable
}](fn func(context.Context, PtrIn) (*dto.Envelope, error), secret []byte, git *gitlog.Manager, write *ratelimit.Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := reqctx.WithClientIP(r.Context(), reqctx.GetClientIP(r))

		admin, err := validateJWT(r, secret)
		if err != nil {
			writeError(ctx, w, dto.Unauthorized("unauthorized access").Wrap(err))
			return
		}
		ctx = reqctx.WithAdmin(ctx, admin)

		if isMutating(r.Method) && !checkRateLimit(ctx, w, write) {
			return
		}

		input := new(In)
		if !bindRequest(ctx, w, r, input) {
			return
		}
		if err := PtrIn(input).Validate(); err != nil {
			writeError(ctx, w, err)
			return
		}

		env, err := fn(ctx, PtrIn(input))
		commitIfMutating(ctx, r, git)
		writeResult(ctx, w, env, err)
	})
}

// WrapAdminRaw wraps a raw http.HandlerFunc with JWT validation, for handlers
// that write non-envelope responses such as file downloads.
func WrapAdminRaw(fn http.HandlerFunc, secret []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := reqctx.WithClientIP(r.Context(), reqctx.GetClientIP(r))
		admin, err := validateJWT(r, secret)
		if err != nil {
			writeError(ctx, w, dto.Unauthorized("unauthorized access").Wrap(err))
			return
		}
		ctx = reqctx.WithAdmin(ctx, admin)
		fn(w, r.WithContext(ctx))
	})
}

// isMutating returns true for HTTP methods that modify state.
func isMutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch || method == http.MethodDelete
}

// commitIfMutating commits data file changes after a mutating request.
func commitIfMutating(ctx context.Context, r *http.Request, git *gitlog.Manager) {
	if git == nil || !isMutating(r.Method) {
		return
	}
	msg := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
	if err := git.CommitDataChanges(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to commit data changes", "err", err)
	}
}

// checkRateLimit enforces the tier keyed by client IP. Returns false after
// writing the 429 envelope when the request is denied.
func checkRateLimit(ctx context.Context, w http.ResponseWriter, tier *ratelimit.Limiter) bool {
	if tier == nil {
		return true
	}
	result := tier.Allow(reqctx.ClientIP(ctx))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	if result.Allowed {
		return true
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
	writeEnvelope(ctx, w, &dto.Envelope{Code: http.StatusTooManyRequests, Message: "too many requests", Data: nil})
	return false
}

// validateJWT extracts and validates the Bearer token, returning the admin
// username it was issued to.
func validateJWT(r *http.Request, secret []byte) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errUnauthorized
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errInvalidAuthHdr
	}
	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errInvalidToken
	}
	return sub, nil
}

// bindRequest populates input from the query string and the request body.
// JSON bodies decode via `json` tags; form bodies bind via `form` tags.
// Returns false if an error was written to the response.
func bindRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, input any) bool {
	populateParams(r.URL.Query().Get, "query", input)

	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		body, err := io.ReadAll(r.Body)
		if err2 := r.Body.Close(); err == nil {
			err = err2
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to read request body", "err", err)
			writeError(ctx, w, dto.BadRequest("failed to read request body"))
			return false
		}
		if len(body) > 0 {
			d := json.NewDecoder(bytes.NewReader(body))
			d.DisallowUnknownFields()
			if err := d.Decode(input); err != nil {
				slog.ErrorContext(ctx, "Failed to decode request body", "err", err)
				writeError(ctx, w, dto.BadRequest("invalid request body"))
				return false
			}
		}
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			slog.ErrorContext(ctx, "Failed to parse form", "err", err)
			writeError(ctx, w, dto.BadRequest("invalid form body"))
			return false
		}
		populateParams(r.PostForm.Get, "form", input)
	}
	return true
}

// populateParams fills struct fields tagged with the given tag from get.
// Unparseable values bind as the zero value, matching the loose PHP-era
// contract where malformed input falls back instead of erroring.
func populateParams(get func(string) string, tag string, input any) {
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Pointer {
		return
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return
	}

	typ := elem.Type()
	for i := range typ.NumField() {
		name := typ.Field(i).Tag.Get(tag)
		if name == "" {
			continue
		}
		raw := get(name)
		if raw == "" {
			continue
		}
		field := elem.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(strings.TrimSpace(raw))
		case reflect.Int:
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				field.SetInt(int64(n))
			}
		}
	}
}

// writeResult renders the handler outcome: an envelope on success, an error
// envelope otherwise.
func writeResult(ctx context.Context, w http.ResponseWriter, env *dto.Envelope, err error) {
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeEnvelope(ctx, w, env)
}

// writeError maps an error to its envelope. Errors without a status code are
// internal.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	message := "internal server error"

	var ews dto.ErrorWithStatus
	if errors.As(err, &ews) {
		code = ews.StatusCode()
		message = ews.Error()
	}

	slog.ErrorContext(ctx, "Handler error", "err", err, "code", code)
	writeEnvelope(ctx, w, &dto.Envelope{Code: code, Message: message, Data: nil})
}

// writeEnvelope writes the envelope as JSON with a matching HTTP status.
func writeEnvelope(ctx context.Context, w http.ResponseWriter, env *dto.Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.Code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", "err", err)
	}
}
