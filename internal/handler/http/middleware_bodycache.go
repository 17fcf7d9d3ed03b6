package http

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"

	"github.com/MKhiriev/auth-gateway/internal/logger"
)

type bodyCtxKeyType struct{}

// bodyCtxKey is the context key under which the buffered request body is
// stored for the rest of the pipeline.
var bodyCtxKey = bodyCtxKeyType{}

// replayableContentTypes lists the media types whose bodies are buffered for
// replay. Streaming uploads (multipart, octet-stream) are not buffered.
var replayableContentTypes = map[string]struct{}{
	"application/json":                  {},
	"application/x-www-form-urlencoded": {},
	"text/plain":                        {},
}

// cachedBody holds a fully buffered request body. Every consumer reads
// through its own reader, so the body can be replayed any number of times
// and concurrent readers never disturb each other.
type cachedBody struct {
	data []byte
}

// Bytes returns the buffered body. Callers must not mutate the slice.
func (b *cachedBody) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Reader returns a fresh reader over the buffered body.
func (b *cachedBody) Reader() io.Reader {
	return bytes.NewReader(b.Bytes())
}

// bodyFromContext returns the buffered body stored by cacheBody, if any.
func bodyFromContext(ctx context.Context) (*cachedBody, bool) {
	body, ok := ctx.Value(bodyCtxKey).(*cachedBody)
	return body, ok
}

// cacheBody buffers replayable request bodies so they can be consumed more
// than once: once by the gateway's own handlers and again when the request
// is forwarded upstream.
//
// The middleware runs on every request. Requests without a body, without a
// positive declared Content-Length (chunked bodies included), or with a
// non-replayable media type pass through untouched; the declared length is
// what bounds the read. After buffering, the original body is replaced with a
// reader over the buffered bytes so downstream code that reads r.Body
// directly keeps working.
func (h *Handler) cacheBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.ContentLength <= 0 || !replayable(r.Header.Get("Content-Type")) {
			next.ServeHTTP(w, r)
			return
		}

		data, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("buffering request body failed")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		body := &cachedBody{data: data}
		r.Body = io.NopCloser(body.Reader())

		ctx := context.WithValue(r.Context(), bodyCtxKey, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func replayable(contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	_, ok := replayableContentTypes[mediaType]
	return ok
}
