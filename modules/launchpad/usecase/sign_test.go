package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	ctx := context.Background()
	payload := bytes.Repeat([]byte{0xab}, 32)

	t.Run("pass-through with ticker as derivation path", func(t *testing.T) {
		env := newTestEnv()

		result, err := env.usecase.Sign(ctx, testAdmin, payload, "MEME", 1)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Signature)

		require.Len(t, env.signer.requests, 1)
		assert.Equal(t, payload, env.signer.requests[0].Payload)
		assert.Equal(t, "MEME", env.signer.requests[0].DerivationPath)
		assert.Equal(t, uint32(1), env.signer.requests[0].KeyVersion)
	})
	t.Run("ticker need not exist in the registry", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.Sign(ctx, testAdmin, payload, "NEVERCREATED", 0)
		require.NoError(t, err)
	})
	t.Run("admin only", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.usecase.Sign(ctx, "alice.test", payload, "MEME", 0)
		assert.ErrorIs(t, err, errs.Unauthorized)
		assert.Empty(t, env.signer.requests)
	})
}

func TestSignerAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("update persists and repoints client", func(t *testing.T) {
		env := newTestEnv()

		require.NoError(t, env.usecase.UpdateSignerAccount(ctx, testAdmin, "signer-v2.test"))
		assert.Equal(t, "signer-v2.test", env.signer.Account())

		value, err := env.dg.GetSetting(ctx, SettingSignerAccount)
		require.NoError(t, err)
		assert.Equal(t, "signer-v2.test", value)
	})
	t.Run("admin only", func(t *testing.T) {
		env := newTestEnv()

		err := env.usecase.UpdateSignerAccount(ctx, "alice.test", "signer-v2.test")
		assert.ErrorIs(t, err, errs.Unauthorized)
		assert.Empty(t, env.signer.Account())
	})
	t.Run("restore applies persisted override", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.dg.SetSetting(ctx, SettingSignerAccount, "signer-v3.test"))

		require.NoError(t, env.usecase.RestoreSignerAccount(ctx))
		assert.Equal(t, "signer-v3.test", env.signer.Account())
	})
	t.Run("restore without persisted override is a no-op", func(t *testing.T) {
		env := newTestEnv()
		env.signer.SetAccount("configured.test")

		require.NoError(t, env.usecase.RestoreSignerAccount(ctx))
		assert.Equal(t, "configured.test", env.signer.Account())
	})
}
