package nitro

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/0xsequence/ethkit/ethrpc"
)

// DebugTraceTransaction fetches the raw trace for a transaction. The
// configured tracer is requested first; when the node rejects it, the
// default structLog tracer is tried once as a fallback. Transient
// transport failures are retried with exponential backoff and each
// attempt is logged; not-found and unsupported-tracer responses are
// permanent.
func (c *Client) DebugTraceTransaction(ctx context.Context, txHash string) (json.RawMessage, error) {
	txHash = NormalizeTxHash(txHash)

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)

		defer cancel()
	}

	c.log.WithField("tx_hash", txHash).Info("Fetching trace")

	raw, err := c.traceWithParams(ctx, tracerParams(txHash, c.config.Tracer))
	if err == nil {
		return raw, nil
	}

	if IsTracerNotSupportedError(err) && c.config.Tracer != "" {
		c.log.WithError(err).Warn("Tracer not supported by node, falling back to struct logger")

		return c.traceWithParams(ctx, structLogParams(txHash))
	}

	return nil, err
}

func (c *Client) traceWithParams(ctx context.Context, params []any) (json.RawMessage, error) {
	var raw json.RawMessage

	operation := func() error {
		raw = nil

		call := ethrpc.NewCallBuilder[json.RawMessage]("debug_traceTransaction", nil, params...)

		if _, err := c.rpc.Do(ctx, call.Into(&raw)); err != nil {
			// Tracer errors first: "method not found" would otherwise
			// match the broader not-found check.
			if IsTracerNotSupportedError(err) {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrTracerNotSupported, err))
			}

			if IsTransactionNotFoundError(err) {
				return backoff.Permanent(fmt.Errorf("%w: %v", ErrTransactionNotFound, err))
			}

			return err
		}

		if len(raw) == 0 || string(raw) == "null" {
			return backoff.Permanent(fmt.Errorf("%w: missing result field", ErrInvalidResponse))
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = c.config.RetryMaxElapsed

	notify := func(err error, wait time.Duration) {
		c.log.WithError(err).WithField("wait", wait).Warn("Trace fetch failed, will retry")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to fetch trace: %w", err)
	}

	return raw, nil
}

// tracerParams builds debug_traceTransaction parameters for a named
// tracer.
func tracerParams(txHash, tracer string) []any {
	if tracer == "" {
		return structLogParams(txHash)
	}

	return []any{
		txHash,
		map[string]any{
			"tracer": tracer,
		},
	}
}

// structLogParams builds parameters for the default struct logger,
// with the memory-heavy sections disabled.
func structLogParams(txHash string) []any {
	return []any{
		txHash,
		map[string]any{
			"disableStorage":   true,
			"disableStack":     true,
			"disableMemory":    true,
			"enableReturnData": false,
		},
	}
}
