package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"example.com/fieldops/internal/domain/notification"
	"example.com/fieldops/internal/domain/overview"
	"example.com/fieldops/internal/infra/backend"
)

type overviewBody struct {
	Stats  *overview.Stats
	Unread string
	Error  string
}

// handleOverview loads the statistics and the unread notification count
// side by side. A failed count only blanks its card.
func (a *API) handleOverview(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	caller := a.backend.As(sess.Token)

	ctx, cancel := context.WithTimeout(r.Context(), a.settings.WaitTimeout)
	defer cancel()

	var (
		stats  *overview.Stats
		unread = "-"
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = caller.Overview(gctx)
		return err
	})
	g.Go(func() error {
		p := notification.Mapping.Build(notification.UnreadFilter(), 1, 1)
		page, err := backend.List[notification.Notification](gctx, caller, notificationsPage.endpoint, p)
		if err != nil {
			if errors.Is(err, backend.ErrUnauthorized) {
				return err
			}
			a.log.Warn("unread notifications", zap.Error(err))
			return nil
		}
		unread = strconv.Itoa(page.Meta.Total)
		return nil
	})

	var body overviewBody
	if err := g.Wait(); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			a.expireSession(w, r)
			return
		}
		a.log.Warn("overview", zap.Error(err))
		body.Error = "Failed to load the overview. Please try again."
	} else {
		body.Stats = stats
		body.Unread = unread
	}

	a.render(w, r, http.StatusOK, "overview", pageData{Title: "Overview", User: sess, Body: body})
}
