package webhook

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"release-tagger/internal/model"
	pkgResponse "release-tagger/pkg/response"
)

// HandleGerritWebhook spools Gerrit change-merged events for the next tagger run.
// @Summary Gerrit webhook
// @Description Accepts Gerrit events. change-merged events are spooled, others are ignored.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-Gerrit-Token header string false "Shared secret"
// @Param X-Gerrit-Signature header string false "sha256=<hex HMAC of the body>"
// @Success 200 {object} response.Resp "Event ignored"
// @Success 202 {object} response.Resp "Event spooled"
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 429 {object} response.Resp
// @Router /webhook/gerrit [post]
func (h *Handler) HandleGerritWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "Gerrit webhook rejected: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	if err := h.security.CheckRateLimit(ExtractIP(c.Request)); err != nil {
		h.l.Warnf(ctx, "Rate limit exceeded: %v", err)
		pkgResponse.TooManyRequests(c)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if err := h.security.Authenticate(c.Request, body); err != nil {
		h.l.Errorf(ctx, "Gerrit webhook verification failed: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	event, err := ParseGerritEvent(body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to parse Gerrit event: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if event.Type != EventChangeMerged {
		h.l.Debugf(ctx, "Ignoring Gerrit event type: %s", event.Type)
		pkgResponse.OK(c, acceptedResponse{Status: "ignored"})
		return
	}

	entry, err := h.spool.Write(ctx, model.Notification{
		Source:     model.SourceWebhook,
		Fields:     event.Fields(),
		ReceivedAt: time.Now().UTC(),
	})
	if err != nil {
		h.l.Errorf(ctx, "Failed to spool Gerrit event: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	h.l.Infof(ctx, "Spooled change %d of %s (%s) as %s", event.Change.Number, event.Change.Project, event.Change.Branch, entry)
	pkgResponse.Accepted(c, acceptedResponse{Status: "spooled", Entry: entry})
}
