package shop

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
	"github.com/xtding233/towerclimb-backend/internal/effect"
	"github.com/xtding233/towerclimb-backend/internal/logger"
	"github.com/xtding233/towerclimb-backend/internal/metrics"
	"github.com/xtding233/towerclimb-backend/internal/player"
	"github.com/xtding233/towerclimb-backend/internal/pricing"
	"github.com/xtding233/towerclimb-backend/internal/reward"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrScrollNotOwned    = errors.New("scroll not owned")
)

// GoldItemID is the reward id credited to the gold balance instead of the inventory.
const GoldItemID = "gold"

// errNoop aborts a player update without committing it.
var errNoop = errors.New("noop")

// Receipt is the outcome of a purchase.
type Receipt struct {
	Quote       pricing.Quote   `json:"quote"`
	Results     []reward.Result `json:"results"`
	GoldGranted int64           `json:"goldGranted"`
	Player      *player.Player  `json:"player"`
}

// ScrollResult is the outcome of using a scroll. Applied is false for unknown scrolls.
type ScrollResult struct {
	Applied      bool           `json:"applied"`
	Effects      []effect.Type  `json:"effects,omitempty"`
	RebirthBonus int            `json:"rebirthBonus,omitempty"`
	Player       *player.Player `json:"player"`
}

// Lookup is the display metadata of one identifier.
type Lookup struct {
	ID     string         `json:"id"`
	Type   catalog.Kind   `json:"type"`
	Name   string         `json:"name"`
	Icon   string         `json:"icon"`
	Rarity catalog.Rarity `json:"rarity"`
}

// Service wires package resolution, pricing and scroll effects to player records.
type Service struct {
	tables   reward.TablesSource
	resolver *reward.Resolver
	applier  *effect.Applier
	players  *player.Store
	log      *zap.Logger
}

func NewService(tables reward.TablesSource, resolver *reward.Resolver, applier *effect.Applier, players *player.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{tables: tables, resolver: resolver, applier: applier, players: players, log: log}
}

// Open resolves one package without charging anyone.
func (s *Service) Open(ctx context.Context, packageID string) (reward.Result, error) {
	res, err := s.resolver.OpenPackage(packageID)
	if err != nil {
		return reward.Result{}, err
	}
	recordOpen(res)
	logger.FromContext(ctx).Debug("package opened",
		zap.String("package", packageID), zap.Int("items", len(res.Items)))
	return res, nil
}

// Purchase charges playerID for qty packages and grants their rewards. Either
// every package resolves and the player is charged, or nothing changes.
func (s *Service) Purchase(ctx context.Context, playerID, packageID string, qty int) (Receipt, error) {
	quote, err := s.tables.Tables().Prices().Quote(packageID, qty)
	if err != nil {
		return Receipt{}, err
	}

	var rc Receipt
	p, err := s.players.Update(playerID, func(p *player.Player) error {
		if p.Gold < quote.Total {
			return fmt.Errorf("%w: need %d gold, have %d", ErrInsufficientFunds, quote.Total, p.Gold)
		}
		results := make([]reward.Result, 0, qty)
		for i := 0; i < qty; i++ {
			res, err := s.resolver.OpenPackage(packageID)
			if err != nil {
				return err
			}
			results = append(results, res)
		}

		now := s.applier.Clock().Now()
		p.ActiveEffects, _ = effect.Cleanup(p.ActiveEffects, now)
		mult := effect.Multiplier(p.ActiveEffects, effect.GoldBoost, now)

		p.Gold -= quote.Total
		var granted int64
		for _, res := range results {
			for _, it := range res.Items {
				if it.Type == catalog.KindItem && it.ID == GoldItemID {
					g := int64(math.Round(float64(it.Count) * mult))
					p.Gold += g
					granted += g
					continue
				}
				p.Grant(it.Ref(), it.Count)
			}
		}
		rc = Receipt{Quote: quote, Results: results, GoldGranted: granted}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}
	rc.Player = p

	metrics.GoldSpent.Add(float64(quote.Total))
	for _, res := range rc.Results {
		recordOpen(res)
	}
	logger.FromContext(ctx).Info("package purchased",
		zap.String("player", playerID),
		zap.String("package", packageID),
		zap.Int("qty", qty),
		zap.Int64("cost", quote.Total),
		zap.Int64("gold_granted", rc.GoldGranted))
	return rc, nil
}

// UseScroll consumes one owned scroll and applies its effects. Unknown scroll
// ids are ignored: nothing is consumed and Applied is false.
func (s *Service) UseScroll(ctx context.Context, playerID, scrollID string) (ScrollResult, error) {
	var out effect.Outcome
	var expired int
	p, err := s.players.Update(playerID, func(p *player.Player) error {
		st, n := s.applier.CleanupExpired(p.EffectState())
		o, ok := s.applier.ApplyScroll(scrollID, st)
		if !ok {
			return errNoop
		}
		if !p.Take(catalog.Item(scrollID)) {
			return fmt.Errorf("%w: %s", ErrScrollNotOwned, scrollID)
		}
		p.Commit(o.State)
		out, expired = o, n
		return nil
	})
	if errors.Is(err, errNoop) {
		logger.FromContext(ctx).Debug("unknown scroll ignored", zap.String("scroll", scrollID))
		cur, gerr := s.players.Get(playerID)
		if gerr != nil {
			return ScrollResult{}, gerr
		}
		return ScrollResult{Applied: false, Player: cur}, nil
	}
	if err != nil {
		return ScrollResult{}, err
	}

	metrics.ScrollsApplied.WithLabelValues(scrollID).Inc()
	metrics.EffectsExpired.Add(float64(expired))
	logger.FromContext(ctx).Info("scroll applied",
		zap.String("player", playerID),
		zap.String("scroll", scrollID),
		zap.Int("rebirth_bonus", out.RebirthBonus))
	return ScrollResult{Applied: true, Effects: out.Applied, RebirthBonus: out.RebirthBonus, Player: p}, nil
}

// Sweep removes expired effects from the stored record.
func (s *Service) Sweep(ctx context.Context, playerID string) (*player.Player, int, error) {
	var expired int
	p, err := s.players.Update(playerID, func(p *player.Player) error {
		st, n := s.applier.CleanupExpired(p.EffectState())
		p.Commit(st)
		expired = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if expired > 0 {
		metrics.EffectsExpired.Add(float64(expired))
		logger.FromContext(ctx).Debug("effects expired", zap.String("player", playerID), zap.Int("count", expired))
	}
	return p, expired, nil
}

// Player returns the current record with expired effects swept.
func (s *Service) Player(ctx context.Context, playerID string) (*player.Player, error) {
	p, _, err := s.Sweep(ctx, playerID)
	return p, err
}

// Lookup resolves display metadata; unknown identifiers get fallbacks.
func (s *Service) Lookup(ref catalog.Ref) Lookup {
	cat := s.tables.Tables().Catalog
	return Lookup{
		ID:     ref.ID,
		Type:   ref.Kind,
		Name:   cat.Name(ref),
		Icon:   cat.Icon(ref),
		Rarity: cat.Rarity(ref),
	}
}

func recordOpen(res reward.Result) {
	metrics.PackagesOpened.WithLabelValues(res.PackageID).Inc()
	for _, it := range res.Items {
		metrics.RewardsGranted.WithLabelValues(string(it.Type), it.Rarity.String()).Add(float64(it.Count))
	}
}
