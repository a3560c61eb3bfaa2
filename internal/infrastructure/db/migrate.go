package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables needed by this app.
// This keeps setup simple (no external migration tool), but still gives persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists stocks (
			symbol text primary key,
			name text not null default '',
			exchange text not null default '',
			is_active boolean not null default true,
			created_at timestamptz not null default now()
		);`,
		`create table if not exists stock_data (
			symbol text not null,
			date date not null,
			current_price double precision not null,
			open_price double precision not null default 0,
			high_price double precision not null default 0,
			low_price double precision not null default 0,
			volume double precision not null default 0,
			dollar_volume double precision not null default 0,
			market_cap double precision null,
			ma_10 double precision null,
			ma_20 double precision null,
			ma_50 double precision null,
			ma_200 double precision null,
			rsi_14 double precision null,
			adr_20 double precision null,
			volume_avg_20 double precision null,
			perfect_order_bullish boolean not null default false,
			score int not null default 0,
			investment_decision text not null default 'HOLD',
			ai_score int not null default 0,
			ai_confidence double precision not null default 0,
			ai_prediction text not null default 'HOLD',
			ai_reasoning text not null default '',
			updated_at timestamptz not null default now(),
			primary key (symbol, date)
		);`,
		`create index if not exists stock_data_date_score_idx on stock_data(date, score desc);`,
		`create index if not exists stock_data_decision_idx on stock_data(investment_decision);`,
		`create table if not exists batch_jobs (
			id bigserial primary key,
			job_name text not null,
			status text not null,
			total_count int not null default 0,
			processed_count int not null default 0,
			success_count int not null default 0,
			error_count int not null default 0,
			started_at timestamptz not null default now(),
			completed_at timestamptz null
		);`,
		`create table if not exists device_tokens (
			token text primary key,
			platform text not null default '',
			created_at timestamptz not null default now()
		);`,
		`create table if not exists error_logs (
			id bigserial primary key,
			job_id bigint null,
			symbol text not null,
			error_type text not null,
			error_message text not null,
			created_at timestamptz not null default now()
		);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
