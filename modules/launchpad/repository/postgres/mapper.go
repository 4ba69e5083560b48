package postgres

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/runeforge-network/launchpad/modules/launchpad/internal/entity"
	"github.com/runeforge-network/launchpad/modules/launchpad/runes"
)

func uint128FromNumeric(src pgtype.Numeric) (uint128.Uint128, error) {
	if !src.Valid {
		return uint128.Uint128{}, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return uint128.Uint128{}, errors.WithStack(err)
	}
	return result, nil
}

func numericFromUint128(src uint128.Uint128) (pgtype.Numeric, error) {
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src.String())); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

type runeModel struct {
	Ticker         string
	LaunchType     string
	Total          pgtype.Numeric
	Minted         pgtype.Numeric
	Price          pgtype.Numeric
	CreatorBalance pgtype.Numeric
	CreatorAddress string
	CreatedAt      pgtype.Timestamp
}

func mapRuneModelToType(src runeModel) (*runes.Rune, error) {
	launchType, err := runes.NewLaunchTypeFromString(src.LaunchType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse launch type")
	}
	total, err := uint128FromNumeric(src.Total)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse total")
	}
	minted, err := uint128FromNumeric(src.Minted)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse minted")
	}
	price, err := uint128FromNumeric(src.Price)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse price")
	}
	creatorBalance, err := uint128FromNumeric(src.CreatorBalance)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse creator balance")
	}
	var createdAt time.Time
	if src.CreatedAt.Valid {
		createdAt = src.CreatedAt.Time.UTC()
	}
	return &runes.Rune{
		Ticker:         src.Ticker,
		LaunchType:     launchType,
		Total:          total,
		Minted:         minted,
		Price:          price,
		CreatorBalance: creatorBalance,
		CreatorAddress: src.CreatorAddress,
		CreatedAt:      createdAt,
	}, nil
}

func mapRuneTypeToModel(src *runes.Rune) (runeModel, error) {
	total, err := numericFromUint128(src.Total)
	if err != nil {
		return runeModel{}, errors.Wrap(err, "failed to convert total")
	}
	minted, err := numericFromUint128(src.Minted)
	if err != nil {
		return runeModel{}, errors.Wrap(err, "failed to convert minted")
	}
	price, err := numericFromUint128(src.Price)
	if err != nil {
		return runeModel{}, errors.Wrap(err, "failed to convert price")
	}
	creatorBalance, err := numericFromUint128(src.CreatorBalance)
	if err != nil {
		return runeModel{}, errors.Wrap(err, "failed to convert creator balance")
	}
	return runeModel{
		Ticker:         src.Ticker,
		LaunchType:     src.LaunchType.String(),
		Total:          total,
		Minted:         minted,
		Price:          price,
		CreatorBalance: creatorBalance,
		CreatorAddress: src.CreatorAddress,
		CreatedAt:      pgtype.Timestamp{Time: src.CreatedAt.UTC(), Valid: !src.CreatedAt.IsZero()},
	}, nil
}

type pendingTransferModel struct {
	ID        pgtype.UUID
	Ticker    string
	Recipient string
	Amount    pgtype.Numeric
	Status    string
	CreatedAt pgtype.Timestamp
	UpdatedAt pgtype.Timestamp
}

func mapPendingTransferModelToType(src pendingTransferModel) (*entity.PendingTransfer, error) {
	amount, err := uint128FromNumeric(src.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse amount")
	}
	status := entity.TransferStatus(src.Status)
	if !status.IsValid() {
		return nil, errors.Errorf("invalid transfer status %q", src.Status)
	}
	var createdAt, updatedAt time.Time
	if src.CreatedAt.Valid {
		createdAt = src.CreatedAt.Time.UTC()
	}
	if src.UpdatedAt.Valid {
		updatedAt = src.UpdatedAt.Time.UTC()
	}
	return &entity.PendingTransfer{
		ID:        uuid.UUID(src.ID.Bytes),
		Ticker:    src.Ticker,
		Recipient: src.Recipient,
		Amount:    amount,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
