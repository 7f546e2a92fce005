package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"healthcare-admin-api/internal/config"
	"healthcare-admin-api/internal/metrics"
	"healthcare-admin-api/internal/models"
	"healthcare-admin-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var walletAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsWalletAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsWalletAddress(s string) bool {
	return walletAddressPattern.MatchString(s)
}

// BlockchainService keeps the registry of wallet/network connections. It
// does not talk to any chain.
type BlockchainService struct {
	repo    *repository.BlockchainRepository
	network config.BlockchainConfig
	audit   auditor
	now     func() time.Time
}

func NewBlockchainService(
	repo *repository.BlockchainRepository,
	auditRepo *repository.AuditRepository,
	network config.BlockchainConfig,
	log zerolog.Logger,
) *BlockchainService {
	return &BlockchainService{
		repo:    repo,
		network: network,
		audit:   auditor{repo: auditRepo, log: log},
		now:     time.Now,
	}
}

// ConnectionStatus is either the active connection or a bare
// "disconnected" marker.
type ConnectionStatus struct {
	Status     string                       `json:"status"`
	Connection *models.BlockchainConnection `json:"connection,omitempty"`
}

// Connect records a new active connection, disconnecting any previous one
// in the same transaction.
func (s *BlockchainService) Connect(ctx context.Context, actor Actor, walletAddress, networkURL string) (*models.BlockchainConnection, error) {
	if !actor.IsAdmin() {
		return nil, newError(ErrForbidden, "Admin access required")
	}

	walletAddress = strings.TrimSpace(walletAddress)
	networkURL = strings.TrimSpace(networkURL)
	if walletAddress == "" || networkURL == "" {
		return nil, newError(ErrValidation, "Wallet address and network URL are required")
	}
	if !IsWalletAddress(walletAddress) {
		return nil, newError(ErrValidation, "Invalid wallet address")
	}
	if !isURL(networkURL) {
		return nil, newError(ErrValidation, "Invalid network URL")
	}

	conn := &models.BlockchainConnection{
		ID:            uuid.NewString(),
		WalletAddress: walletAddress,
		NetworkURL:    networkURL,
		NetworkName:   s.network.NetworkName,
		ChainID:       s.network.ChainID,
		ConnectedAt:   s.now().UTC(),
	}
	if err := s.repo.ReplaceConnection(ctx, conn); err != nil {
		return nil, err
	}
	metrics.BlockchainConnected.Set(1)

	s.audit.record(ctx, actor.idPtr(), "blockchain_connect", fmt.Sprintf("Connected wallet %s to %s", walletAddress, networkURL))

	return conn, nil
}

// Status returns the active connection, if any.
func (s *BlockchainService) Status(ctx context.Context) (*ConnectionStatus, error) {
	conn, err := s.repo.GetActiveConnection(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ConnectionStatus{Status: models.ConnectionDisconnected}, nil
		}
		return nil, err
	}
	return &ConnectionStatus{Status: models.ConnectionConnected, Connection: conn}, nil
}

// Disconnect marks the active connection disconnected.
func (s *BlockchainService) Disconnect(ctx context.Context, actor Actor) error {
	if !actor.IsAdmin() {
		return newError(ErrForbidden, "Admin access required")
	}

	n, err := s.repo.Disconnect(ctx, s.now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return newError(ErrNotFound, "No active blockchain connection")
	}
	metrics.BlockchainConnected.Set(0)

	s.audit.record(ctx, actor.idPtr(), "blockchain_disconnect", "Disconnected blockchain")
	return nil
}
