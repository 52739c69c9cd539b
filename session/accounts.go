package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/client"
	"github.com/AlexZinkM/docuchain-wallet/internal/common"
	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// Outcome of resolving which accounts a wallet can log into
type Outcome string

const (
	NoAccount Outcome = "none"
	Single    Outcome = "single"
	Multiple  Outcome = "multiple"
)

// Resolution lists the accounts a wallet can log into
type Resolution struct {
	Outcome    Outcome
	Candidates []model.AccountCandidate
	// User is set when a single candidate was switched to
	User *model.AccountUser
}

// NewResolution classifies candidates
func NewResolution(candidates []model.AccountCandidate) *Resolution {
	r := &Resolution{Outcome: NoAccount, Candidates: candidates}
	switch {
	case len(candidates) == 1:
		r.Outcome = Single
	case len(candidates) > 1:
		r.Outcome = Multiple
	}
	return r
}

// Match compares the provider's current wallet with the account's wallet
type Match struct {
	ProviderWallet string
	AccountWallet  string
	Mismatch       bool
}

// AccountSwitcher moves the whole backend session between accounts that share a wallet
type AccountSwitcher struct {
	backend  AccountBackend
	provider client.Provider
	logger   *zap.Logger
	reporter
}

// NewAccountSwitcher creates an account switcher; provider may be nil
func NewAccountSwitcher(backend AccountBackend, provider client.Provider, notifier Notifier, log *zap.Logger) *AccountSwitcher {
	log = logger.OrNop(log)
	return &AccountSwitcher{
		backend:  backend,
		provider: provider,
		logger:   log,
		reporter: newReporter(notifier, log),
	}
}

// CheckAvailableAccounts lists the accounts wallet can log into
func (a *AccountSwitcher) CheckAvailableAccounts(ctx context.Context, wallet string) ([]model.AccountCandidate, error) {
	address, err := common.NormalizeAddress(wallet)
	if err != nil || common.IsZeroAddress(address) {
		return nil, a.fail(invalidAddress(wallet, err))
	}

	candidates, err := a.backend.CheckWalletAccounts(ctx, address)
	if err != nil {
		return nil, a.fail(backendFailure(address, "check wallet accounts", err))
	}
	a.logger.Debug("wallet accounts", zap.String("wallet", address), zap.Int("count", len(candidates)))
	return candidates, nil
}

// SwitchToAccount moves the backend session to candidate's account
func (a *AccountSwitcher) SwitchToAccount(ctx context.Context, candidate model.AccountCandidate) (*model.AccountUser, error) {
	user, err := a.backend.SwitchToAccount(ctx, candidate.Username, candidate.WalletAddress)
	if err != nil {
		return nil, a.fail(backendFailure(candidate.WalletAddress, "switch account", err))
	}
	a.logger.Info("switched account", zap.String("username", user.Username))
	a.tell(LevelSuccess, "Switched to account "+user.Username)
	return user, nil
}

// Resolve lists the accounts of wallet and switches automatically when there is exactly one
func (a *AccountSwitcher) Resolve(ctx context.Context, wallet string) (*Resolution, error) {
	candidates, err := a.CheckAvailableAccounts(ctx, wallet)
	if err != nil {
		return nil, err
	}

	res := NewResolution(candidates)
	if res.Outcome == Single {
		user, err := a.SwitchToAccount(ctx, candidates[0])
		if err != nil {
			return res, err
		}
		res.User = user
	}
	return res, nil
}

// CheckWalletAccountMatch compares the provider's selected account with accountWallet without prompting.
// Only two real, different addresses are a mismatch.
func (a *AccountSwitcher) CheckWalletAccountMatch(ctx context.Context, accountWallet string) (*Match, error) {
	if a.provider == nil {
		return nil, a.fail(&Error{Kind: ProviderUnavailable, Message: "no wallet provider available"})
	}

	accounts, err := a.provider.Accounts(ctx)
	if err != nil {
		return nil, a.fail(providerFailure("list accounts", err))
	}

	match := &Match{AccountWallet: accountWallet}
	if len(accounts) == 0 {
		return match, nil
	}
	match.ProviderWallet = accounts[0]

	if common.IsZeroAddress(match.ProviderWallet) || common.IsZeroAddress(accountWallet) {
		return match, nil
	}
	match.Mismatch = !common.SameAddress(match.ProviderWallet, accountWallet)
	if match.Mismatch {
		a.warn(&Error{
			Kind:       WalletNotLinked,
			Wallet:     match.ProviderWallet,
			Message:    "the wallet selected in the provider is not this account's wallet",
			Suggestion: "Switch wallet in the provider or switch account",
		})
	}
	return match, nil
}
