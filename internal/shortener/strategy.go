package shortener

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/younesh11/url-shortner/pkg/base62"
)

// StrategyName identifies a shortening strategy.
type StrategyName string

const (
	// StrategyRandom generates a fresh random code for every request.
	StrategyRandom StrategyName = "random"
	// StrategyHash returns the same code for equivalent target URLs.
	StrategyHash StrategyName = "hash"
	// StrategySequence derives codes from snowflake IDs.
	StrategySequence StrategyName = "sequence"
)

// Strategy defines the interface for URL shortening strategies.
// The target URL is already normalized when a strategy sees it.
type Strategy interface {
	Shorten(ctx context.Context, targetURL string, expiresAt *time.Time) (*Link, error)
}

// maxGenerateAttempts bounds collision retries for random codes.
const maxGenerateAttempts = 6

// RandomStrategy generates a new random code for each URL,
// regenerating on collision up to maxGenerateAttempts times.
type RandomStrategy struct {
	store        Repository
	generateCode CodeGenerator
}

// NewRandomStrategy creates a random-code shortening strategy.
func NewRandomStrategy(store Repository, generator CodeGenerator) *RandomStrategy {
	return &RandomStrategy{
		store:        store,
		generateCode: generator,
	}
}

func (s *RandomStrategy) Shorten(ctx context.Context, targetURL string, expiresAt *time.Time) (*Link, error) {
	for range maxGenerateAttempts {
		code := s.generateCode()
		if IsReservedAlias(code) {
			continue
		}

		link := &Link{
			Code:      Code(code),
			TargetURL: targetURL,
			CreatedAt: time.Now().UTC(),
			ExpiresAt: expiresAt,
		}

		err := s.store.Save(ctx, link)
		if err == nil {
			return link, nil
		}

		if errors.Is(err, ErrCodeTaken) {
			continue
		}

		return nil, err
	}

	return nil, ErrCodeExhausted
}

// HashStrategy deduplicates URLs by returning the same code for
// equivalent target URLs.
type HashStrategy struct {
	store        Repository
	generateCode CodeGenerator
}

// NewHashStrategy creates a hash-based shortening strategy.
func NewHashStrategy(store Repository, generator CodeGenerator) *HashStrategy {
	return &HashStrategy{
		store:        store,
		generateCode: generator,
	}
}

func (s *HashStrategy) Shorten(ctx context.Context, targetURL string, expiresAt *time.Time) (*Link, error) {
	canonical, err := CanonicalizeURL(targetURL)
	if err != nil {
		return nil, err
	}

	urlHash := HashURL(canonical)

	existing, err := s.store.GetByHash(ctx, urlHash)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	for range maxGenerateAttempts {
		code := s.generateCode()
		if IsReservedAlias(code) {
			continue
		}

		link := &Link{
			Code:      Code(code),
			TargetURL: targetURL,
			URLHash:   urlHash,
			CreatedAt: time.Now().UTC(),
			ExpiresAt: expiresAt,
		}

		err = s.store.Save(ctx, link)
		if err == nil {
			return link, nil
		}

		if errors.Is(err, ErrCodeTaken) {
			continue
		}

		return nil, err
	}

	return nil, ErrCodeExhausted
}

// SequenceStrategy derives codes from snowflake IDs, base62-encoded.
// IDs are unique by construction, so no collision retry is needed.
type SequenceStrategy struct {
	store Repository
	node  *snowflake.Node
}

// NewSequenceStrategy creates a sequence-based shortening strategy.
// nodeID must be in the range 0-1023.
func NewSequenceStrategy(store Repository, nodeID int64) (*SequenceStrategy, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &SequenceStrategy{
		store: store,
		node:  node,
	}, nil
}

func (s *SequenceStrategy) Shorten(ctx context.Context, targetURL string, expiresAt *time.Time) (*Link, error) {
	link := &Link{
		Code:      Code(base62.Encode(s.node.Generate().Int64())),
		TargetURL: targetURL,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}

	if err := s.store.Save(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}
