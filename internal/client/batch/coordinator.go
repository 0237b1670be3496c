// Package batch fans work out over many devices and merges the results.
//
// Every worker writes into its own slot of a pre-sized slice; results are
// merged into a map by the calling goroutine once all workers are done, and
// no worker outlives the call that started it.
package batch

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lapsctl/internal/client/api"
	"github.com/dmitrijs2005/lapsctl/internal/client/resolver"
	"github.com/dmitrijs2005/lapsctl/internal/common"
	"github.com/dmitrijs2005/lapsctl/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Resolver resolves a single identifier.
type Resolver interface {
	Resolve(ctx context.Context, id resolver.Identifier) (resolver.DeviceRef, error)
}

// NameLookup fetches computers by management ID in one request.
type NameLookup interface {
	ComputersByManagementIDs(ctx context.Context, ids []string) ([]api.Computer, error)
}

type Coordinator struct {
	resolver  Resolver
	lookup    NameLookup
	chunkSize int
	limit     int
	logger    logging.Logger
}

// New builds a Coordinator. chunkSize bounds the IDs per lookup request and
// limit bounds the workers in flight; non-positive values pick defaults.
func New(r Resolver, lookup NameLookup, chunkSize, limit int, logger logging.Logger) *Coordinator {
	if chunkSize <= 0 {
		chunkSize = common.DefaultPageSize
	}
	if limit <= 0 {
		limit = common.DefaultMaxConcurrency
	}
	return &Coordinator{resolver: r, lookup: lookup, chunkSize: chunkSize, limit: limit, logger: logger}
}

// ResolveMany resolves every distinct identifier concurrently. Management IDs
// never hit the network. Per-item failures are kept in the result; the error
// is ErrNoneSucceeded only when nothing resolved.
func (c *Coordinator) ResolveMany(ctx context.Context, raws []string) (Result[resolver.DeviceRef], error) {
	ids := dedupe(raws)
	slots := make([]Outcome[resolver.DeviceRef], len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, raw := range ids {
		id := resolver.Identifier{Raw: raw}
		if ref, ok := resolver.FromOpaque(id); ok {
			slots[i] = Outcome[resolver.DeviceRef]{Value: ref}
			continue
		}
		g.Go(func() error {
			ref, err := c.resolver.Resolve(gctx, id)
			slots[i] = Outcome[resolver.DeviceRef]{Value: ref, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := make(Result[resolver.DeviceRef], len(ids))
	for i, raw := range ids {
		res[raw] = slots[i]
		if err := slots[i].Err; err != nil {
			c.logger.Warn(ctx, "identifier not resolved", "identifier", raw, "error", err)
		}
	}

	if res.Succeeded() == 0 {
		return res, fmt.Errorf("resolve %d identifier(s): %w", len(ids), ErrNoneSucceeded)
	}
	return res, nil
}

// LookupDisplayNames maps management IDs to computer names with one request
// per chunk of at most chunkSize IDs. Any failed chunk fails the lookup.
func (c *Coordinator) LookupDisplayNames(ctx context.Context, managementIDs []string) (map[string]string, error) {
	chunks := Chunk(dedupe(managementIDs), c.chunkSize)
	slots := make([][]api.Computer, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, chunk := range chunks {
		g.Go(func() error {
			computers, err := c.lookup.ComputersByManagementIDs(gctx, chunk)
			if err != nil {
				return fmt.Errorf("lookup names for %d device(s): %w", len(chunk), err)
			}
			slots[i] = computers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(managementIDs))
	for _, computers := range slots {
		for _, comp := range computers {
			names[comp.General.ManagementID] = comp.General.Name
		}
	}
	return names, nil
}

// ApplyToMany runs op for every resolved device concurrently. Identifiers that
// failed resolution keep their resolution error. Failures are logged with the
// identifier and never stop the other items.
func ApplyToMany[T any](ctx context.Context, c *Coordinator, refs Result[resolver.DeviceRef], op func(context.Context, resolver.DeviceRef) (T, error)) (Result[T], error) {
	keys := refs.Keys()
	slots := make([]Outcome[T], len(keys))

	var g errgroup.Group
	g.SetLimit(c.limit)
	for i, key := range keys {
		in := refs[key]
		if in.Err != nil {
			slots[i] = Outcome[T]{Err: in.Err}
			continue
		}
		g.Go(func() error {
			v, err := op(ctx, in.Value)
			slots[i] = Outcome[T]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := make(Result[T], len(keys))
	for i, key := range keys {
		res[key] = slots[i]
		if err := slots[i].Err; err != nil && refs[key].Err == nil {
			c.logger.Error(ctx, "operation failed", "identifier", key, "management_id", refs[key].Value.ManagementID, "error", err)
		}
	}

	if res.Succeeded() == 0 {
		return res, fmt.Errorf("apply to %d device(s): %w", len(keys), ErrNoneSucceeded)
	}
	return res, nil
}
