package seed

import (
	"context"
	"fmt"
	"math/rand"

	appinv "github.com/bazaartech/backend/internal/application/inventory"
	"github.com/bazaartech/backend/internal/domain/catalog"
	"github.com/bazaartech/backend/internal/domain/identity"
	"github.com/bazaartech/backend/internal/domain/inventory"
	"github.com/bazaartech/backend/internal/domain/partner"
	"github.com/bazaartech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service populates the database with sample data for development and
// manual testing. Movements go through the regular creation path so the
// reconciliation pipeline is exercised end to end.
type Service struct {
	stores    partner.StoreRepository
	suppliers partner.SupplierRepository
	products  catalog.ProductRepository
	users     identity.UserRepository
	movements *appinv.MovementService
	logger    *zap.Logger
}

// NewService creates a seed Service
func NewService(
	stores partner.StoreRepository,
	suppliers partner.SupplierRepository,
	products catalog.ProductRepository,
	users identity.UserRepository,
	movements *appinv.MovementService,
	logger *zap.Logger,
) *Service {
	return &Service{
		stores:    stores,
		suppliers: suppliers,
		products:  products,
		users:     users,
		movements: movements,
		logger:    logger.Named("seed"),
	}
}

// Summary reports what a seed run created
type Summary struct {
	Stores    int `json:"stores"`
	Suppliers int `json:"suppliers"`
	Products  int `json:"products"`
	Users     int `json:"users"`
	Movements int `json:"movements"`
}

var (
	sampleStores = []struct{ name, location string }{
		{"Central Warehouse", "12 Dockside Rd"},
		{"Downtown Branch", "48 Market St"},
		{"Airport Kiosk", "Terminal 2, Gate B"},
	}
	sampleSuppliers = []struct{ name, contact string }{
		{"Acme Wholesale", "orders@acme-wholesale.example"},
		{"Northline Distribution", "+1 555 0188"},
	}
	sampleProducts = []struct{ name, sku, description string }{
		{"Espresso Beans 1kg", "COF-ESP-1KG", "dark roast, whole bean"},
		{"Ceramic Mug", "MUG-CER-350", "350ml, dishwasher safe"},
		{"Pour-over Kettle", "KTL-PRO-900", "900ml gooseneck"},
		{"Filter Papers x100", "FLT-V60-100", "size 02, bleached"},
		{"Cold Brew Bottle", "BTL-CLD-750", "750ml with strainer"},
	}
)

// Run creates the sample entities and a batch of random movements.
// Entity creation failures abort the run. Stores and suppliers left over
// from a previous run are matched by name, products by SKU and the admin
// user by email, so Run can be called repeatedly without duplicating
// entities; each run still appends a fresh batch of movements.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	storeIDs := make([]uuid.UUID, 0, len(sampleStores))
	for _, def := range sampleStores {
		if existing := s.findStoreByName(ctx, def.name); existing != nil {
			storeIDs = append(storeIDs, existing.ID)
			continue
		}
		store, err := partner.NewStore(def.name, def.location)
		if err != nil {
			return nil, err
		}
		if err := s.stores.Save(ctx, store); err != nil {
			return nil, fmt.Errorf("seed store %q: %w", def.name, err)
		}
		storeIDs = append(storeIDs, store.ID)
		summary.Stores++
	}

	supplierIDs := make([]uuid.UUID, 0, len(sampleSuppliers))
	for _, def := range sampleSuppliers {
		if existing := s.findSupplierByName(ctx, def.name); existing != nil {
			supplierIDs = append(supplierIDs, existing.ID)
			continue
		}
		supplier, err := partner.NewSupplier(def.name, def.contact)
		if err != nil {
			return nil, err
		}
		if err := s.suppliers.Save(ctx, supplier); err != nil {
			return nil, fmt.Errorf("seed supplier %q: %w", def.name, err)
		}
		supplierIDs = append(supplierIDs, supplier.ID)
		summary.Suppliers++
	}

	productIDs := make([]uuid.UUID, 0, len(sampleProducts))
	for _, def := range sampleProducts {
		if existing, err := s.products.FindBySKU(ctx, def.sku); err == nil && existing != nil {
			productIDs = append(productIDs, existing.ID)
			continue
		}
		product, err := catalog.NewProduct(def.name, def.sku, def.description)
		if err != nil {
			return nil, err
		}
		if err := s.products.Save(ctx, product); err != nil {
			return nil, fmt.Errorf("seed product %q: %w", def.sku, err)
		}
		productIDs = append(productIDs, product.ID)
		summary.Products++
	}

	adminID, created, err := s.seedAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if created {
		summary.Users++
	}

	movements, err := s.seedMovements(ctx, storeIDs, productIDs, supplierIDs, adminID)
	if err != nil {
		return nil, err
	}
	summary.Movements = movements

	s.logger.Info("seed run complete",
		zap.Int("stores", summary.Stores),
		zap.Int("suppliers", summary.Suppliers),
		zap.Int("products", summary.Products),
		zap.Int("movements", summary.Movements),
	)
	return summary, nil
}

// findStoreByName matches on the exact name; the repository search is a
// substring match, so results are filtered again here. Lookup failures
// count as a miss and the caller falls through to creation.
func (s *Service) findStoreByName(ctx context.Context, name string) *partner.Store {
	stores, err := s.stores.FindAll(ctx, shared.Filter{Search: name})
	if err != nil {
		return nil
	}
	for i := range stores {
		if stores[i].Name == name {
			return &stores[i]
		}
	}
	return nil
}

func (s *Service) findSupplierByName(ctx context.Context, name string) *partner.Supplier {
	suppliers, err := s.suppliers.FindAll(ctx, shared.Filter{Search: name})
	if err != nil {
		return nil
	}
	for i := range suppliers {
		if suppliers[i].Name == name {
			return &suppliers[i]
		}
	}
	return nil
}

func (s *Service) seedAdmin(ctx context.Context) (*uuid.UUID, bool, error) {
	const email = "admin@example.com"

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return &existing.ID, false, nil
	}
	user, err := identity.NewUser(email, "changeme123", "Seed", "Admin", identity.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, false, fmt.Errorf("seed admin user: %w", err)
	}
	return &user.ID, true, nil
}

// seedMovements fills each store/product pair with an initial inbound
// movement, then layers a handful of random in/out movements on top.
func (s *Service) seedMovements(ctx context.Context, storeIDs, productIDs, supplierIDs []uuid.UUID, userID *uuid.UUID) (int, error) {
	if len(storeIDs) == 0 || len(productIDs) == 0 {
		return 0, nil
	}

	count := 0
	for _, storeID := range storeIDs {
		for _, productID := range productIDs {
			input := appinv.CreateMovementInput{
				StoreID:   storeID,
				ProductID: productID,
				Kind:      inventory.MovementIn,
				Quantity:  int64(30 + rand.Intn(70)),
				UserID:    userID,
			}
			if len(supplierIDs) > 0 {
				supplierID := supplierIDs[rand.Intn(len(supplierIDs))]
				input.SupplierID = &supplierID
			}
			if _, err := s.movements.Create(ctx, input); err != nil {
				return count, fmt.Errorf("seed initial stock: %w", err)
			}
			count++
		}
	}

	kinds := []inventory.MovementKind{inventory.MovementIn, inventory.MovementOut, inventory.MovementOut, inventory.MovementRemove}
	for i := 0; i < 20; i++ {
		input := appinv.CreateMovementInput{
			StoreID:   storeIDs[rand.Intn(len(storeIDs))],
			ProductID: productIDs[rand.Intn(len(productIDs))],
			Kind:      kinds[rand.Intn(len(kinds))],
			Quantity:  int64(1 + rand.Intn(15)),
			UserID:    userID,
		}
		if input.Kind == inventory.MovementIn && len(supplierIDs) > 0 {
			supplierID := supplierIDs[rand.Intn(len(supplierIDs))]
			input.SupplierID = &supplierID
		}
		if _, err := s.movements.Create(ctx, input); err != nil {
			return count, fmt.Errorf("seed random movement: %w", err)
		}
		count++
	}
	return count, nil
}
