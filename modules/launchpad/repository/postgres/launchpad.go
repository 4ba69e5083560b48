package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

const selectRune = `SELECT ticker, launch_type, total, minted, price, creator_balance, creator_address, created_at FROM launchpad_runes `

func scanRune(row pgx.Row) (*runes.Rune, error) {
	var model runeModel
	if err := row.Scan(&model.Ticker, &model.LaunchType, &model.Total, &model.Minted, &model.Price, &model.CreatorBalance, &model.CreatorAddress, &model.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapRuneModelToType(model)
}

func (r *Repository) GetRune(ctx context.Context, ticker string) (*runes.Rune, error) {
	return scanRune(r.db.QueryRow(ctx, selectRune+`WHERE ticker = $1`, ticker))
}

func (r *Repository) GetRuneForUpdate(ctx context.Context, ticker string) (*runes.Rune, error) {
	return scanRune(r.db.QueryRow(ctx, selectRune+`WHERE ticker = $1 FOR UPDATE`, ticker))
}

func (r *Repository) CreateRune(ctx context.Context, rune *runes.Rune) error {
	model, err := mapRuneTypeToModel(rune)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO launchpad_runes (ticker, launch_type, total, minted, price, creator_balance, creator_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		model.Ticker, model.LaunchType, model.Total, model.Minted, model.Price, model.CreatorBalance, model.CreatorAddress, model.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(errs.Duplicate, "rune %q already exists", rune.Ticker)
		}
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) UpdateRune(ctx context.Context, rune *runes.Rune) error {
	model, err := mapRuneTypeToModel(rune)
	if err != nil {
		return errors.WithStack(err)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE launchpad_runes SET minted = $2, creator_balance = $3 WHERE ticker = $1`,
		model.Ticker, model.Minted, model.CreatorBalance,
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if tag.RowsAffected() == 0 {
		return errors.WithStack(errs.NotFound)
	}
	return nil
}

func (r *Repository) GetRunes(ctx context.Context, offset, limit int32) ([]*runes.Rune, error) {
	rows, err := r.db.Query(ctx, selectRune+`ORDER BY id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()

	result := make([]*runes.Rune, 0, limit)
	for rows.Next() {
		rune, err := scanRune(rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result = append(result, rune)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during iteration")
	}
	return result, nil
}

func (r *Repository) getBalance(ctx context.Context, ticker, account string, forUpdate bool) (*entity.Balance, error) {
	query := `SELECT amount FROM launchpad_balances WHERE ticker = $1 AND account = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var amount pgtype.Numeric
	if err := r.db.QueryRow(ctx, query, ticker, account).Scan(&amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// absent entries are implicitly zero
			return &entity.Balance{Ticker: ticker, Account: account}, nil
		}
		return nil, errors.Wrap(err, "error during query")
	}
	value, err := uint128FromNumeric(amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse amount")
	}
	return &entity.Balance{Ticker: ticker, Account: account, Amount: value}, nil
}

func (r *Repository) GetBalance(ctx context.Context, ticker, account string) (*entity.Balance, error) {
	return r.getBalance(ctx, ticker, account, false)
}

func (r *Repository) GetBalanceForUpdate(ctx context.Context, ticker, account string) (*entity.Balance, error) {
	return r.getBalance(ctx, ticker, account, true)
}

func (r *Repository) AddBalance(ctx context.Context, ticker, account string, delta uint128.Uint128) error {
	amount, err := numericFromUint128(delta)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO launchpad_balances (ticker, account, amount) VALUES ($1, $2, $3)
		ON CONFLICT (ticker, account) DO UPDATE SET amount = launchpad_balances.amount + EXCLUDED.amount`,
		ticker, account, amount,
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) SetBalance(ctx context.Context, ticker, account string, amount uint128.Uint128) error {
	value, err := numericFromUint128(amount)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO launchpad_balances (ticker, account, amount) VALUES ($1, $2, $3)
		ON CONFLICT (ticker, account) DO UPDATE SET amount = EXCLUDED.amount`,
		ticker, account, value,
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) AddHolding(ctx context.Context, account, ticker string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO launchpad_holdings (account, ticker) VALUES ($1, $2)
		ON CONFLICT (account, ticker) DO NOTHING`,
		account, ticker,
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) RemoveHolding(ctx context.Context, account, ticker string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM launchpad_holdings WHERE account = $1 AND ticker = $2`, account, ticker)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) GetHoldings(ctx context.Context, account string, offset, limit int32) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ticker FROM launchpad_holdings WHERE account = $1 ORDER BY created_at, ticker OFFSET $2 LIMIT $3`,
		account, offset, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()

	tickers := make([]string, 0, limit)
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, errors.Wrap(err, "error during scan")
		}
		tickers = append(tickers, ticker)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during iteration")
	}
	return tickers, nil
}

const selectPendingTransfer = `SELECT id, ticker, recipient, amount, status, created_at, updated_at FROM launchpad_pending_transfers `

func scanPendingTransfer(row pgx.Row) (*entity.PendingTransfer, error) {
	var model pendingTransferModel
	if err := row.Scan(&model.ID, &model.Ticker, &model.Recipient, &model.Amount, &model.Status, &model.CreatedAt, &model.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapPendingTransferModelToType(model)
}

func (r *Repository) CreatePendingTransfer(ctx context.Context, transfer *entity.PendingTransfer) error {
	amount, err := numericFromUint128(transfer.Amount)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO launchpad_pending_transfers (id, ticker, recipient, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		pgtype.UUID{Bytes: transfer.ID, Valid: true}, transfer.Ticker, transfer.Recipient, amount, string(transfer.Status),
		pgtype.Timestamp{Time: transfer.CreatedAt.UTC(), Valid: true},
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) GetPendingTransferForUpdate(ctx context.Context, id uuid.UUID) (*entity.PendingTransfer, error) {
	return scanPendingTransfer(r.db.QueryRow(ctx, selectPendingTransfer+`WHERE id = $1 FOR UPDATE`, pgtype.UUID{Bytes: id, Valid: true}))
}

func (r *Repository) UpdatePendingTransferStatus(ctx context.Context, id uuid.UUID, status entity.TransferStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE launchpad_pending_transfers SET status = $2, updated_at = now() WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true}, string(status),
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if tag.RowsAffected() == 0 {
		return errors.WithStack(errs.NotFound)
	}
	return nil
}

func (r *Repository) GetPendingTransfersStuckSince(ctx context.Context, status entity.TransferStatus, cutoff time.Time) ([]*entity.PendingTransfer, error) {
	rows, err := r.db.Query(ctx, selectPendingTransfer+`WHERE status = $1 AND created_at <= $2 ORDER BY created_at`,
		string(status), pgtype.Timestamp{Time: cutoff.UTC(), Valid: true},
	)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()

	var transfers []*entity.PendingTransfer
	for rows.Next() {
		transfer, err := scanPendingTransfer(rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during iteration")
	}
	return transfers, nil
}

func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	if err := r.db.QueryRow(ctx, `SELECT value FROM launchpad_settings WHERE key = $1`, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errors.WithStack(errs.NotFound)
		}
		return "", errors.Wrap(err, "error during query")
	}
	return value, nil
}

func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO launchpad_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}
