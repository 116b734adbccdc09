package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
)

type opKind uint8

const (
	opSpawn opKind = iota
	opDespawn
	opInsert
)

func (k opKind) String() string {
	switch k {
	case opSpawn:
		return "spawn"
	case opDespawn:
		return "despawn"
	case opInsert:
		return "insert"
	}
	return "unknown"
}

type command struct {
	op     opKind
	entity ecs.Entity
	bundle Bundle
}

// ApplyResult summarises one Commands.Apply call.
type ApplyResult struct {
	Spawned   []ecs.Entity
	Despawned int
	Inserted  int
	Dropped   int
}

// Commands buffers structural changes recorded during a frame.
// Commands are applied in recording order.
type Commands struct {
	ops     []command
	pending map[ecs.Entity]struct{}
	logger  *slog.Logger
}

// NewCommands creates an empty buffer. A nil logger uses slog.Default.
func NewCommands(logger *slog.Logger) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	return &Commands{
		pending: make(map[ecs.Entity]struct{}),
		logger:  logger,
	}
}

// Spawn records the creation of an entity with the components in b.
func (c *Commands) Spawn(b Bundle) {
	c.ops = append(c.ops, command{op: opSpawn, bundle: b})
}

// Despawn records the destruction of e.
func (c *Commands) Despawn(e ecs.Entity) {
	c.ops = append(c.ops, command{op: opDespawn, entity: e})
	c.pending[e] = struct{}{}
}

// Insert records adding or overwriting components on e. An insert targeting
// an entity already queued for despawn is dropped with a warning and
// ErrStaleEntity is returned.
func (c *Commands) Insert(e ecs.Entity, b Bundle) error {
	if _, gone := c.pending[e]; gone {
		c.logger.Warn("dropping insert on despawned entity",
			"entity", e.ID(),
			"components", b.Kinds().String(),
		)
		return fmt.Errorf("inserting on entity %d: %w", e.ID(), ErrStaleEntity)
	}
	c.ops = append(c.ops, command{op: opInsert, entity: e, bundle: b})
	return nil
}

// Len returns the number of buffered commands.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Apply executes every buffered command against s and empties the buffer.
// Commands that target dead entities are dropped and logged; they never
// abort the remaining commands.
func (c *Commands) Apply(s *Store) (ApplyResult, error) {
	var res ApplyResult
	if s.InFrame() {
		return res, fmt.Errorf("applying commands: %w", ErrFrameLocked)
	}
	defer c.Reset()

	for _, cmd := range c.ops {
		switch cmd.op {
		case opSpawn:
			e, err := s.Spawn(cmd.bundle)
			if err != nil {
				return res, fmt.Errorf("applying spawn: %w", err)
			}
			res.Spawned = append(res.Spawned, e)

		case opDespawn:
			if err := s.Despawn(cmd.entity); err != nil {
				c.drop(cmd, err)
				res.Dropped++
				continue
			}
			res.Despawned++

		case opInsert:
			if !s.Alive(cmd.entity) {
				c.drop(cmd, ErrDeadEntity)
				res.Dropped++
				continue
			}
			if err := s.Insert(cmd.entity, cmd.bundle); err != nil {
				if errors.Is(err, ErrDeadEntity) {
					c.drop(cmd, err)
					res.Dropped++
					continue
				}
				return res, fmt.Errorf("applying insert: %w", err)
			}
			res.Inserted++
		}
	}

	return res, nil
}

// Reset discards all buffered commands.
func (c *Commands) Reset() {
	c.ops = c.ops[:0]
	clear(c.pending)
}

func (c *Commands) drop(cmd command, err error) {
	c.logger.Warn("dropping command",
		"op", cmd.op.String(),
		"entity", cmd.entity.ID(),
		"err", err,
	)
}
