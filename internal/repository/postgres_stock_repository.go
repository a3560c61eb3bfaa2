package repository

import (
	"context"
	"time"

	"stock-screener-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStockRepository persists screened stock rows in Postgres.
// Rows are keyed by (symbol, date) and written with upsert semantics so
// re-running a screen for the same day overwrites instead of duplicating.
type PostgresStockRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStockRepository(pool *pgxpool.Pool) *PostgresStockRepository {
	return &PostgresStockRepository{pool: pool}
}

func (r *PostgresStockRepository) UpsertRecord(ctx context.Context, rec *domain.StockRecord) error {
	_, err := r.pool.Exec(ctx, `
		insert into stock_data (
			symbol, date, current_price, open_price, high_price, low_price,
			volume, dollar_volume, market_cap,
			ma_10, ma_20, ma_50, ma_200, rsi_14, adr_20, volume_avg_20,
			perfect_order_bullish, score, investment_decision,
			ai_score, ai_confidence, ai_prediction, ai_reasoning, updated_at
		) values (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19,
			$20, $21, $22, $23, now()
		)
		on conflict (symbol, date) do update set
			current_price = excluded.current_price,
			open_price = excluded.open_price,
			high_price = excluded.high_price,
			low_price = excluded.low_price,
			volume = excluded.volume,
			dollar_volume = excluded.dollar_volume,
			market_cap = excluded.market_cap,
			ma_10 = excluded.ma_10,
			ma_20 = excluded.ma_20,
			ma_50 = excluded.ma_50,
			ma_200 = excluded.ma_200,
			rsi_14 = excluded.rsi_14,
			adr_20 = excluded.adr_20,
			volume_avg_20 = excluded.volume_avg_20,
			perfect_order_bullish = excluded.perfect_order_bullish,
			score = excluded.score,
			investment_decision = excluded.investment_decision,
			ai_score = excluded.ai_score,
			ai_confidence = excluded.ai_confidence,
			ai_prediction = excluded.ai_prediction,
			ai_reasoning = excluded.ai_reasoning,
			updated_at = now()
	`,
		rec.Symbol, rec.Date, rec.CurrentPrice, rec.OpenPrice, rec.HighPrice, rec.LowPrice,
		rec.Volume, rec.DollarVolume, rec.MarketCap,
		rec.MA10, rec.MA20, rec.MA50, rec.MA200, rec.RSI14, rec.ADR20, rec.VolumeAvg20,
		rec.PerfectOrder, rec.Score, string(rec.InvestmentDecision),
		rec.AIScore, rec.AIConfidence, rec.AIPrediction, rec.AIReasoning,
	)
	return err
}

// LatestRecords returns every row from the most recent screening date,
// ordered by score descending.
func (r *PostgresStockRepository) LatestRecords(ctx context.Context) ([]domain.StockRecord, error) {
	rows, err := r.pool.Query(ctx, `
		select symbol, to_char(date, 'YYYY-MM-DD'), current_price, open_price, high_price, low_price,
			volume, dollar_volume, market_cap,
			ma_10, ma_20, ma_50, ma_200, rsi_14, adr_20, volume_avg_20,
			perfect_order_bullish, score, investment_decision,
			ai_score, ai_confidence, ai_prediction, ai_reasoning, updated_at
		from stock_data
		where date = (select max(date) from stock_data)
		order by score desc, symbol
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		var rec domain.StockRecord
		var decision string
		if err := rows.Scan(
			&rec.Symbol, &rec.Date, &rec.CurrentPrice, &rec.OpenPrice, &rec.HighPrice, &rec.LowPrice,
			&rec.Volume, &rec.DollarVolume, &rec.MarketCap,
			&rec.MA10, &rec.MA20, &rec.MA50, &rec.MA200, &rec.RSI14, &rec.ADR20, &rec.VolumeAvg20,
			&rec.PerfectOrder, &rec.Score, &decision,
			&rec.AIScore, &rec.AIConfidence, &rec.AIPrediction, &rec.AIReasoning, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rec.InvestmentDecision = domain.Action(decision)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ActiveSymbols returns the symbols flagged active in the stocks table.
func (r *PostgresStockRepository) ActiveSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `select symbol from stocks where is_active order by symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}

// EnsureSymbols inserts the configured symbol universe, keeping rows that
// already exist untouched.
func (r *PostgresStockRepository) EnsureSymbols(ctx context.Context, symbols []string) error {
	for _, symbol := range symbols {
		_, err := r.pool.Exec(ctx, `
			insert into stocks(symbol) values ($1)
			on conflict (symbol) do nothing
		`, symbol)
		if err != nil {
			return err
		}
	}
	return nil
}

// PostgresBatchJobRecorder writes batch refresh progress to batch_jobs so
// long runs can be inspected while they execute.
type PostgresBatchJobRecorder struct {
	pool *pgxpool.Pool
}

func NewPostgresBatchJobRecorder(pool *pgxpool.Pool) *PostgresBatchJobRecorder {
	return &PostgresBatchJobRecorder{pool: pool}
}

func (r *PostgresBatchJobRecorder) StartJob(ctx context.Context, name string, total int) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		insert into batch_jobs(job_name, status, total_count, started_at)
		values ($1, 'running', $2, $3)
		returning id
	`, name, total, time.Now()).Scan(&id)
	return id, err
}

func (r *PostgresBatchJobRecorder) UpdateProgress(ctx context.Context, jobID int64, processed int) error {
	_, err := r.pool.Exec(ctx, `
		update batch_jobs set processed_count = $2 where id = $1
	`, jobID, processed)
	return err
}

func (r *PostgresBatchJobRecorder) FinishJob(ctx context.Context, jobID int64, status string, succeeded, failed int) error {
	_, err := r.pool.Exec(ctx, `
		update batch_jobs
		set status = $2,
			success_count = $3,
			error_count = $4,
			processed_count = $3 + $4,
			completed_at = now()
		where id = $1
	`, jobID, status, succeeded, failed)
	return err
}

// LogError records a per-symbol failure during a batch run.
func (r *PostgresBatchJobRecorder) LogError(ctx context.Context, jobID int64, symbol, errType, message string) error {
	_, err := r.pool.Exec(ctx, `
		insert into error_logs(job_id, symbol, error_type, error_message)
		values ($1, $2, $3, $4)
	`, jobID, symbol, errType, message)
	return err
}
