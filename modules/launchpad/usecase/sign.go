package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/signerclient"
)

// SettingSignerAccount is the settings key holding the signer account
// override applied by UpdateSignerAccount.
const SettingSignerAccount = "signer_account"

// Sign forwards payload to the external signer, deriving the signing key from
// the ticker. Pure pass-through: no ledger state is read or written, and the
// ticker is not required to exist in the registry.
func (u *Usecase) Sign(ctx context.Context, caller string, payload []byte, ticker string, keyVersion uint32) (*signerclient.SignResponse, error) {
	if err := u.assertAdmin(caller); err != nil {
		return nil, errors.WithStack(err)
	}

	result, err := u.signer.Sign(ctx, signerclient.SignRequest{
		Payload:        payload,
		DerivationPath: ticker,
		KeyVersion:     keyVersion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "signer request failed")
	}
	return result, nil
}

// UpdateSignerAccount repoints the signing gateway at another signer account
// and persists the choice across restarts.
func (u *Usecase) UpdateSignerAccount(ctx context.Context, caller, account string) error {
	if err := u.assertAdmin(caller); err != nil {
		return errors.WithStack(err)
	}
	if err := u.dg.SetSetting(ctx, SettingSignerAccount, account); err != nil {
		return errors.Wrap(err, "failed to persist signer account")
	}
	u.signer.SetAccount(account)
	return nil
}

// RestoreSignerAccount applies a persisted signer account override, if any.
// Called once at module start.
func (u *Usecase) RestoreSignerAccount(ctx context.Context) error {
	account, err := u.dg.GetSetting(ctx, SettingSignerAccount)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil
		}
		return errors.Wrap(err, "failed to load signer account")
	}
	u.signer.SetAccount(account)
	return nil
}
