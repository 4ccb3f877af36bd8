package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/ShababulAlam/quantum-ecommerce/internal/cache"
	"github.com/ShababulAlam/quantum-ecommerce/internal/domain"
	"github.com/ShababulAlam/quantum-ecommerce/internal/events"
	"github.com/ShababulAlam/quantum-ecommerce/internal/repository"
	"github.com/shopspring/decimal"
)

// In-memory stand-ins for the repository interfaces.

type mockProductRepo struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	variants map[string]*domain.ProductVariant
	err      error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products: make(map[string]*domain.Product),
		variants: make(map[string]*domain.ProductVariant),
	}
}

func (m *mockProductRepo) FindProductByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.products[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) FindProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.Slug == slug {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) FindVariant(_ context.Context, productID, variantID string) (*domain.ProductVariant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.variants[variantID]; ok && v.ProductID == productID {
		copy := *v
		return &copy, nil
	}
	return nil, repository.ErrVariantNotFound
}

func (m *mockProductRepo) ListProducts(_ context.Context, _ domain.ProductFilter) ([]domain.Product, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.IsVisible {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (m *mockProductRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) CreateVariant(_ context.Context, v *domain.ProductVariant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variants[v.ID] = v
	return nil
}

type mockCartRepo struct {
	mu       sync.RWMutex
	seq      int
	carts    map[string]*domain.Cart
	items    []*domain.CartItem // insertion order, like the real added_at sort
	products *mockProductRepo
	err      error
}

func newMockCartRepo(products *mockProductRepo) *mockCartRepo {
	return &mockCartRepo{
		carts:    make(map[string]*domain.Cart),
		products: products,
	}
}

func (m *mockCartRepo) nextID(prefix string) string {
	m.seq++
	return prefix + "-" + strconv.Itoa(m.seq)
}

func (m *mockCartRepo) FindCartByIdentity(_ context.Context, owner domain.Identity) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.carts {
		if c.Owner == owner {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repository.ErrCartNotFound
}

func (m *mockCartRepo) CreateCart(_ context.Context, owner domain.Identity) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart := &domain.Cart{ID: m.nextID("cart"), Owner: owner}
	m.carts[cart.ID] = cart
	copy := *cart
	return &copy, nil
}

func (m *mockCartRepo) DeleteCart(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	kept := m.items[:0]
	for _, it := range m.items {
		if it.CartID != cartID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

func (m *mockCartRepo) AdoptCart(_ context.Context, cartID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	cart.Owner = domain.UserOwned(userID)
	return nil
}

func (m *mockCartRepo) CartLines(_ context.Context, cartID string) ([]domain.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var lines []domain.CartLine
	for _, it := range m.items {
		if it.CartID != cartID {
			continue
		}
		p, ok := m.products.products[it.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, domain.CartLine{Item: *it, Product: *p})
	}
	return lines, nil
}

func (m *mockCartRepo) FindItem(_ context.Context, cartID, productID, variantID string) (*domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.CartID == cartID && it.ProductID == productID && it.VariantID == variantID {
			copy := *it
			return &copy, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func (m *mockCartRepo) FindItemByID(_ context.Context, itemID string) (*domain.CartItem, domain.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.ID == itemID {
			cart, ok := m.carts[it.CartID]
			if !ok {
				return nil, domain.Identity{}, repository.ErrItemNotFound
			}
			copy := *it
			return &copy, cart.Owner, nil
		}
	}
	return nil, domain.Identity{}, repository.ErrItemNotFound
}

func (m *mockCartRepo) AddItem(_ context.Context, item *domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == "" {
		item.ID = m.nextID("item")
	}
	copy := *item
	m.items = append(m.items, &copy)
	return nil
}

func (m *mockCartRepo) UpdateItemQuantity(_ context.Context, itemID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == itemID {
			it.Quantity = quantity
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockCartRepo) ReassignItem(_ context.Context, itemID, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == itemID {
			it.CartID = cartID
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockCartRepo) RemoveItem(_ context.Context, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == itemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockCartRepo) ClearItems(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, it := range m.items {
		if it.CartID != cartID {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

func (m *mockCartRepo) itemsIn(cartID string) []*domain.CartItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.CartItem
	for _, it := range m.items {
		if it.CartID == cartID {
			copy := *it
			out = append(out, &copy)
		}
	}
	return out
}

type mockPromoRepo struct {
	mu     sync.RWMutex
	promos map[string]*domain.PromoCode // keyed by upper-cased code
}

func newMockPromoRepo() *mockPromoRepo {
	return &mockPromoRepo{promos: make(map[string]*domain.PromoCode)}
}

func (m *mockPromoRepo) FindPromoByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.promos[strings.ToUpper(code)]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, repository.ErrPromoNotFound
}

func (m *mockPromoRepo) CreatePromo(_ context.Context, p *domain.PromoCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promos[strings.ToUpper(p.Code)] = p
	return nil
}

type mockOrderRepo struct {
	mu     sync.Mutex
	seq    int64
	placed []*domain.Order
	err    error
}

func (m *mockOrderRepo) PlaceOrder(_ context.Context, order *domain.Order, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	order.ID = "order-" + strconv.FormatInt(m.seq, 10)
	order.Number = "ORD-" + strconv.FormatInt(1000+m.seq, 10)
	copy := *order
	m.placed = append(m.placed, &copy)
	return nil
}

func (m *mockOrderRepo) FindOrderByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.placed {
		if o.ID == id {
			copy := *o
			return &copy, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) ListOrdersByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, o := range m.placed {
		if o.UserID == userID {
			copy := *o
			out = append(out, &copy)
		}
	}
	return out, nil
}

type mockAddressRepo struct {
	mu        sync.Mutex
	seq       int
	addresses map[string]*domain.Address
}

func newMockAddressRepo() *mockAddressRepo {
	return &mockAddressRepo{addresses: make(map[string]*domain.Address)}
}

func (m *mockAddressRepo) FindAddressForUser(_ context.Context, addressID, userID string) (*domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.addresses[addressID]; ok && a.UserID == userID {
		copy := *a
		return &copy, nil
	}
	return nil, repository.ErrAddressNotFound
}

func (m *mockAddressRepo) CreateAddress(_ context.Context, a *domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = "addr-" + strconv.Itoa(m.seq)
	copy := *a
	m.addresses[a.ID] = &copy
	return nil
}

type mockCache struct {
	mu   sync.RWMutex
	view *domain.CartView
	err  error
}

func (m *mockCache) Get(context.Context, domain.Identity) (*domain.CartView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.view == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.view, nil
}

func (m *mockCache) Set(_ context.Context, _ domain.Identity, view *domain.CartView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = view
	return m.err
}

func (m *mockCache) Delete(context.Context, domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = nil
	return m.err
}

type mockGateway struct {
	mu      sync.Mutex
	charges int
	err     error
}

func (m *mockGateway) Charge(_ context.Context, _ decimal.Decimal, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.charges++
	return "PAY-test" + strconv.Itoa(m.charges), nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.OrderCreated
	err    error
}

func (m *mockPublisher) PublishOrderCreated(_ context.Context, event events.OrderCreated) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}
