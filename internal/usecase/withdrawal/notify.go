package withdrawal

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"go.uber.org/zap"
)

type mail struct {
	subject string
	body    string
}

func receivedMail(w *domain.Withdrawal) mail {
	return mail{
		subject: "Withdraw Request Received",
		body: fmt.Sprintf(
			"Hello %s, your withdraw request of $%s has been received and is being processed. It will take 3 to 7 days.",
			w.Seller.ShopName, w.Amount.String(),
		),
	}
}

func transitionMail(shopName string, w *domain.Withdrawal) mail {
	if w.Status == domain.WithdrawalRejected {
		return mail{
			subject: "Withdraw Request Rejected",
			body:    fmt.Sprintf("Hello %s, your withdraw request of $%s has been rejected.", shopName, w.Amount.String()),
		}
	}
	return mail{
		subject: "Withdraw Request Approved",
		body:    fmt.Sprintf("Hello %s, your withdraw request of $%s has been approved.", shopName, w.Amount.String()),
	}
}

// notify runs after the unit of work has committed, so it is detached from
// the caller's cancellation and bounded by NotifyTimeout instead. The bound
// holds even if the mailer ignores ctx.
func (uc *DefaultWithdrawalUsecase) notify(ctx context.Context, to string, m mail) error {
	if uc.mailer == nil {
		return nil
	}

	ctx = context.WithoutCancel(ctx)
	if uc.opts.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.NotifyTimeout)
		defer cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- uc.mailer.Send(ctx, to, m.subject, m.body)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("notification timed out: %w", ctx.Err())
	}
}

func (uc *DefaultWithdrawalUsecase) publish(ctx context.Context, event domain.WithdrawalEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishWithdrawal(context.WithoutCancel(ctx), event); err != nil {
		uc.logger.Warn("failed to publish withdrawal event",
			zap.String("event", string(event.Type)),
			zap.String("withdrawal_id", event.WithdrawalID),
			zap.Error(err))
	}
}
