package middleware

import (
	"net/http"
	"path"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/utools/internal/telemetry"
	"github.com/GregMSThompson/utools/pkg/logger"
)

// ToolTelemetry wraps every route of one tool: it tags the request logger
// with the tool id and records the invocation on observer.
func ToolTelemetry(observer *telemetry.ToolObserver, toolID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action := path.Base(r.URL.Path)
			_, ctx := logger.With(r.Context(), "tool", toolID)
			ctx, span := observer.Start(ctx, toolID, action)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			observer.Finish(ctx, span, telemetry.Invocation{
				ToolID:   toolID,
				Action:   action,
				Status:   status,
				Duration: time.Since(start),
			})
		})
	}
}
