package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sut-badminton/registration/live"
	"github.com/sut-badminton/registration/models"
	"github.com/sut-badminton/registration/storage"
)

func calculateTotalFee(p1, p2 models.PlayerType) int {
	return p1.Fee() + p2.Fee()
}

// Slip upload is the only way into awaiting_payment_verification, so it is
// absent from the admin transitions below.
var allowedTransitions = map[models.TeamStatus][]models.TeamStatus{
	models.StatusPendingEvaluation:           {models.StatusPassedEvaluation, models.StatusRejected},
	models.StatusPassedEvaluation:            {models.StatusPendingEvaluation, models.StatusRejected},
	models.StatusAwaitingPaymentVerification: {models.StatusPaymentVerified, models.StatusPassedEvaluation},
	models.StatusRejected:                    {},
	models.StatusPaymentVerified:             {},
}

func isValidStatusTransition(current, next models.TeamStatus) bool {
	if current == next {
		return true
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func normalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

func publisherOrNop(p live.Publisher) live.Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// discardUploads removes objects stored earlier in a failed operation. It runs
// detached from ctx cancellation so a dropped client does not leave orphans.
func discardUploads(ctx context.Context, files *storage.Gateway, logger *slog.Logger, uploads ...*storage.UploadResult) {
	cleanupCtx := context.WithoutCancel(ctx)
	for _, u := range uploads {
		if u == nil {
			continue
		}
		if err := files.Remove(cleanupCtx, u.Key); err != nil {
			logger.Warn("failed to remove orphaned upload", slog.String("key", u.Key), slog.Any("error", err))
		}
	}
}
