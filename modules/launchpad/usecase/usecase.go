package usecase

import (
	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/runeforge-network/launchpad/common"
	"github.com/runeforge-network/launchpad/common/errs"
	"github.com/runeforge-network/launchpad/modules/launchpad/datagateway"
	"github.com/runeforge-network/launchpad/modules/launchpad/paymentclient"
	"github.com/runeforge-network/launchpad/modules/launchpad/signerclient"
)

type Usecase struct {
	dg      datagateway.LaunchpadDataGateway
	payment paymentclient.Contract
	signer  signerclient.Contract
	network common.Network

	adminAccount   string
	paymentAccount string

	clock clockwork.Clock
}

func New(dg datagateway.LaunchpadDataGateway, payment paymentclient.Contract, signer signerclient.Contract, network common.Network, adminAccount, paymentAccount string, clock clockwork.Clock) *Usecase {
	return &Usecase{
		dg:             dg,
		payment:        payment,
		signer:         signer,
		network:        network,
		adminAccount:   adminAccount,
		paymentAccount: paymentAccount,
		clock:          clock,
	}
}

func (u *Usecase) assertAdmin(caller string) error {
	if caller != u.adminAccount {
		return errors.Wrapf(errs.Unauthorized, "caller %q is not the admin", caller)
	}
	return nil
}

// assertPaymentService guards the entry points only the payment-token ledger
// may call: mint notifications and transfer results. Anything else could
// forge mints.
func (u *Usecase) assertPaymentService(caller string) error {
	if caller != u.paymentAccount {
		return errors.Wrapf(errs.Unauthorized, "caller %q is not the payment service", caller)
	}
	return nil
}
