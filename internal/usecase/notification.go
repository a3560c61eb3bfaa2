package usecase

import (
	"context"
	"fmt"
	"time"

	"stock-screener-backend/internal/domain"
)

// One alert per symbol per cooldown window. The screen runs daily, so a
// 20h window means at most one push per trading day even if the batch is
// re-triggered manually.
const notifyCooldown = 20 * time.Hour

// notifyBuyDecisions pushes an FCM alert for every fresh BUY decision.
func (uc *ScreenerUsecase) notifyBuyDecisions(ctx context.Context, records []domain.StockRecord) {
	if uc.fcmClient == nil || !uc.fcmClient.IsEnabled() {
		return
	}

	tokens, err := uc.tokenRepo.GetAllTokens(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("could not load device tokens")
		return
	}
	if len(tokens) == 0 {
		return
	}

	now := time.Now()
	for _, rec := range records {
		if rec.InvestmentDecision != domain.ActionBuy {
			continue
		}

		uc.mu.RLock()
		lastNotified, seen := uc.notified[rec.Symbol]
		uc.mu.RUnlock()
		if seen && now.Sub(lastNotified) < notifyCooldown {
			continue
		}

		title := fmt.Sprintf("🚀 %s - BUY signal", rec.Symbol)
		body := fmt.Sprintf("Score: %d | AI: %d | Price: $%.2f", rec.Score, rec.AIScore, rec.CurrentPrice)
		data := map[string]string{
			"symbol":   rec.Symbol,
			"score":    fmt.Sprintf("%d", rec.Score),
			"price":    fmt.Sprintf("%.2f", rec.CurrentPrice),
			"decision": string(rec.InvestmentDecision),
		}

		if err := uc.fcmClient.SendMulticast(ctx, tokens, title, body, data); err != nil {
			uc.log.Warn().Err(err).Str("symbol", rec.Symbol).Msg("push notification failed")
			continue
		}

		uc.log.Info().Str("symbol", rec.Symbol).Int("devices", len(tokens)).Msg("sent BUY alert")
		uc.mu.Lock()
		uc.notified[rec.Symbol] = now
		uc.mu.Unlock()
	}

	uc.mu.Lock()
	for symbol, at := range uc.notified {
		if now.Sub(at) >= notifyCooldown {
			delete(uc.notified, symbol)
		}
	}
	uc.mu.Unlock()
}
