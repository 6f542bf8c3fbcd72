package tokenizer

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// DefaultBaseValue is the base value assigned to freshly minted tokens
// unless the caller supplies one.
const DefaultBaseValue = 100.0

// maxMintAttempts bounds token id regeneration when a generated identifier
// collides with an existing one.
const maxMintAttempts = 3

// MintInput represents the input for minting a token
type MintInput struct {
	TreeID      uuid.UUID
	MinterID    uuid.UUID
	ImageURI    string // opaque locator, stored verbatim
	MetadataURI string // opaque locator, stored verbatim
	BaseValue   float64
}

// TokenizerService mints at most one token per tree and serves token reads
type TokenizerService struct {
	TreeRepo  domain.TreeRepository
	TokenRepo domain.TokenRepository
	Logger    *zap.Logger
}

// NewTokenizerService creates a new TokenizerService instance
func NewTokenizerService(treeRepo domain.TreeRepository, tokenRepo domain.TokenRepository, logger *zap.Logger) *TokenizerService {
	return &TokenizerService{
		TreeRepo:  treeRepo,
		TokenRepo: tokenRepo,
		Logger:    logger,
	}
}

// Mint creates the one token for a tree. Preconditions in order: a
// non-negative base value (ErrInvalidArgument; zero means use the default),
// the tree exists (ErrNotFound), the minter owns it (ErrForbidden), and no token
// references it yet (ErrAlreadyMinted — also enforced by a storage-layer
// uniqueness constraint, so a concurrent second mint fails deterministically
// instead of inserting a duplicate). Identifier collisions are retried with
// a fresh id up to a small bound, then surfaced.
func (s *TokenizerService) Mint(ctx context.Context, input MintInput) (*domain.Token, error) {
	if input.BaseValue < 0 {
		return nil, fmt.Errorf("%w: base value must not be negative", domain.ErrInvalidArgument)
	}

	tree, err := s.TreeRepo.GetByID(ctx, input.TreeID)
	if err != nil {
		return nil, err
	}

	if tree.OwnerID != input.MinterID {
		return nil, domain.ErrForbidden
	}

	if _, err := s.TokenRepo.GetByTreeID(ctx, input.TreeID); err == nil {
		return nil, domain.ErrAlreadyMinted
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	baseValue := input.BaseValue
	if baseValue == 0 {
		baseValue = DefaultBaseValue
	}

	var token *domain.Token
	for attempt := 1; ; attempt++ {
		now := time.Now().UTC()
		token = &domain.Token{
			ID:           uuid.New(),
			TokenID:      newTokenID(input.TreeID),
			TreeID:       input.TreeID,
			OwnerID:      input.MinterID,
			ImageURI:     input.ImageURI,
			MetadataURI:  input.MetadataURI,
			BaseValue:    baseValue,
			CurrentValue: baseValue,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = s.TokenRepo.Create(ctx, token)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrTokenIDConflict) || attempt >= maxMintAttempts {
			return nil, err
		}
		s.Logger.Warn("token id collision, regenerating",
			zap.String("token_id", token.TokenID),
			zap.Int("attempt", attempt))
	}

	s.Logger.Info("minted token",
		zap.String("token_id", token.TokenID),
		zap.String("tree_id", token.TreeID.String()),
		zap.String("owner_id", token.OwnerID.String()))

	return token, nil
}

// GetToken retrieves a token by its public identifier
func (s *TokenizerService) GetToken(ctx context.Context, tokenID string) (*domain.Token, error) {
	return s.TokenRepo.GetByTokenID(ctx, tokenID)
}

// GetTokenByTree retrieves the token minted for a tree, if any
func (s *TokenizerService) GetTokenByTree(ctx context.Context, treeID uuid.UUID) (*domain.Token, error) {
	return s.TokenRepo.GetByTreeID(ctx, treeID)
}

// ListTokens retrieves all tokens owned by the given principal
func (s *TokenizerService) ListTokens(ctx context.Context, ownerID uuid.UUID) ([]*domain.Token, error) {
	return s.TokenRepo.ListByOwner(ctx, ownerID)
}

// newTokenID builds a public token identifier from the tree id plus fresh
// entropy, e.g. "TREE-9F3A02C1-4B7D11E0". Global uniqueness is guaranteed by
// the storage constraint, not by this generator.
func newTokenID(treeID uuid.UUID) string {
	entropy := uuid.New()
	return fmt.Sprintf("TREE-%s-%s", shortHex(treeID), shortHex(entropy))
}

func shortHex(id uuid.UUID) string {
	return strings.ToUpper(hex.EncodeToString(id[:4]))
}
