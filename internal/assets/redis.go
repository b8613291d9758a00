package assets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"veridev/pkg/domain"
)

// transferRetries bounds optimistic-lock retries before giving up.
const transferRetries = 5

// RedisLedger keeps balances and allowances in Redis so several engine
// processes can share one asset backend. Transfers run as optimistic WATCH
// transactions over the three touched keys; a concurrent write aborts the
// exec and the transfer retries.
type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func balanceKey(identity domain.Identity, asset domain.AssetRef) string {
	return fmt.Sprintf("assets:%s:balance:%s", asset, identity)
}

func allowanceKey(owner domain.Identity, asset domain.AssetRef) string {
	return fmt.Sprintf("assets:%s:allowance:%s", asset, owner)
}

// Mint credits an identity; funding helper, mirror of the memory ledger.
func (l *RedisLedger) Mint(ctx context.Context, identity domain.Identity, asset domain.AssetRef, amount uint64) error {
	return l.client.IncrBy(ctx, balanceKey(identity, asset), int64(amount)).Err()
}

func (l *RedisLedger) Approve(ctx context.Context, owner domain.Identity, asset domain.AssetRef, amount uint64) error {
	return l.client.Set(ctx, allowanceKey(owner, asset), amount, 0).Err()
}

func (l *RedisLedger) Transfer(ctx context.Context, from, to domain.Identity, asset domain.AssetRef, amount uint64) error {
	fromBalance := balanceKey(from, asset)
	fromAllowance := allowanceKey(from, asset)
	toBalance := balanceKey(to, asset)

	txn := func(tx *redis.Tx) error {
		allowance, err := getUint(ctx, tx, fromAllowance)
		if err != nil {
			return err
		}
		if allowance < amount {
			return ErrAllowanceExceeded
		}
		balance, err := getUint(ctx, tx, fromBalance)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientFunds
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fromAllowance, allowance-amount, 0)
			pipe.Set(ctx, fromBalance, balance-amount, 0)
			pipe.IncrBy(ctx, toBalance, int64(amount))
			return nil
		})
		return err
	}

	for i := 0; i < transferRetries; i++ {
		err := l.client.Watch(ctx, txn, fromBalance, fromAllowance, toBalance)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("transfer aborted after %d optimistic-lock retries", transferRetries)
}

func (l *RedisLedger) BalanceOf(ctx context.Context, identity domain.Identity, asset domain.AssetRef) (uint64, error) {
	return getUint(ctx, l.client, balanceKey(identity, asset))
}

func (l *RedisLedger) Allowance(ctx context.Context, owner domain.Identity, asset domain.AssetRef) (uint64, error) {
	return getUint(ctx, l.client, allowanceKey(owner, asset))
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getUint(ctx context.Context, c redisGetter, key string) (uint64, error) {
	val, err := c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt ledger value at %s: %w", key, err)
	}
	return n, nil
}
