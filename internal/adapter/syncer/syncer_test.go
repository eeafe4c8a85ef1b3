package syncer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/syncer"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const window = 30 * time.Millisecond

type updateCall struct {
	itemID   string
	quantity int
}

type fakeCartAPI struct {
	mu       sync.Mutex
	adds     []domain.LineItem
	updates  []updateCall
	removes  []string
	fetched  []domain.LineItem
	addErr   error
	updErr   error
	updated  chan updateCall
	addAcked chan string
}

func newFakeCartAPI() *fakeCartAPI {
	return &fakeCartAPI{
		updated:  make(chan updateCall, 16),
		addAcked: make(chan string, 16),
	}
}

func (f *fakeCartAPI) FetchCart(
	ctx context.Context, customerID string,
) ([]domain.LineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetched, nil
}

func (f *fakeCartAPI) AddItem(
	ctx context.Context, customerID string, item domain.LineItem,
) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return "", f.addErr
	}
	f.adds = append(f.adds, item)
	id := "srv-" + item.ProductID
	f.addAcked <- id
	return id, nil
}

func (f *fakeCartAPI) UpdateQuantity(
	ctx context.Context, customerID, itemID string, quantity int,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updErr != nil {
		return f.updErr
	}
	c := updateCall{itemID, quantity}
	f.updates = append(f.updates, c)
	f.updated <- c
	return nil
}

func (f *fakeCartAPI) RemoveItem(
	ctx context.Context, customerID, productID string,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes = append(f.removes, productID)
	return nil
}

func (f *fakeCartAPI) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

type fakeBinder struct {
	mu    sync.Mutex
	bound map[domain.Key]string
}

func (b *fakeBinder) BindRemoteItem(
	sessionID string, k domain.Key, remoteItemID string,
) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bound == nil {
		b.bound = make(map[domain.Key]string)
	}
	b.bound[k] = remoteItemID
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *fakeNotifier) Notify(sessionID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, message)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

func TestCartSyncerDebounce(t *testing.T) {
	t.Run("RapidIncrementsCollapseToOneUpdate", func(t *testing.T) {
		api := newFakeCartAPI()
		notifier := new(fakeNotifier)
		s := syncer.NewCartSyncer(api, notifier, window)
		defer s.Close()

		item := domain.LineItem{ProductID: "p1", Quantity: 1, UnitPrice: 10}
		k := item.Key()

		s.SyncItemAdded("sess", "cust1", item)

		select {
		case <-api.addAcked:
		case <-time.After(time.Second):
			t.Fatal("add never reached the remote")
		}

		for qty := 2; qty <= 5; qty++ {
			s.SyncQuantity("sess", "cust1", k, qty)
		}

		select {
		case c := <-api.updated:
			assert.Equal(t, "srv-p1", c.itemID)
			assert.Equal(t, 5, c.quantity, "only the final quantity is sent")
		case <-time.After(time.Second):
			t.Fatal("debounced update never fired")
		}

		time.Sleep(3 * window)
		assert.Equal(t, 1, api.updateCount(), "intermediate states never transmitted")
	})

	t.Run("UpdateBeforeAckIsRescheduled", func(t *testing.T) {
		api := newFakeCartAPI()
		notifier := new(fakeNotifier)
		s := syncer.NewCartSyncer(api, notifier, window)
		defer s.Close()

		item := domain.LineItem{ProductID: "p1", Quantity: 1, UnitPrice: 10}

		// simulate the ack arriving via a later fetch instead of the add
		api.mu.Lock()
		api.fetched = []domain.LineItem{
			{ProductID: "p1", RemoteItemID: "srv-p1", Quantity: 1, UnitPrice: 10},
		}
		api.mu.Unlock()

		s.SyncQuantity("sess", "cust1", item.Key(), 3)

		_, err := s.FetchCart(t.Context(), "sess", "cust1")
		require.NoError(t, err)

		select {
		case c := <-api.updated:
			assert.Equal(t, 3, c.quantity)
		case <-time.After(time.Second):
			t.Fatal("rescheduled update never fired")
		}
	})

	t.Run("RemoveCancelsPendingUpdate", func(t *testing.T) {
		api := newFakeCartAPI()
		notifier := new(fakeNotifier)
		s := syncer.NewCartSyncer(api, notifier, window)
		defer s.Close()

		item := domain.LineItem{ProductID: "p1", Quantity: 1, UnitPrice: 10}
		k := item.Key()

		s.SyncItemAdded("sess", "cust1", item)
		<-api.addAcked

		s.SyncQuantity("sess", "cust1", k, 2)
		s.SyncItemRemoved("sess", "cust1", k)

		time.Sleep(3 * window)
		assert.Equal(t, 0, api.updateCount())

		api.mu.Lock()
		removes := append([]string(nil), api.removes...)
		api.mu.Unlock()
		assert.Equal(t, []string{"p1"}, removes)
	})
}

func TestCartSyncerBindsRemoteID(t *testing.T) {
	api := newFakeCartAPI()
	notifier := new(fakeNotifier)
	s := syncer.NewCartSyncer(api, notifier, window)
	defer s.Close()

	binder := new(fakeBinder)
	s.SetItemBinder(binder)

	item := domain.LineItem{ProductID: "p1", Quantity: 1, UnitPrice: 10}
	s.SyncItemAdded("sess", "cust1", item)
	<-api.addAcked

	require.Eventually(t, func() bool {
		binder.mu.Lock()
		defer binder.mu.Unlock()
		return binder.bound[item.Key()] == "srv-p1"
	}, time.Second, 5*time.Millisecond)
}

func TestCartSyncerFailureNotifies(t *testing.T) {
	t.Run("FailedAdd", func(t *testing.T) {
		api := newFakeCartAPI()
		api.addErr = errors.New("remote down")
		notifier := new(fakeNotifier)
		s := syncer.NewCartSyncer(api, notifier, window)
		defer s.Close()

		s.SyncItemAdded("sess", "cust1",
			domain.LineItem{ProductID: "p1", Quantity: 1})

		require.Eventually(t, func() bool {
			return notifier.count() == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("FailedUpdateNoRollbackSignal", func(t *testing.T) {
		api := newFakeCartAPI()
		notifier := new(fakeNotifier)
		s := syncer.NewCartSyncer(api, notifier, window)
		defer s.Close()

		item := domain.LineItem{ProductID: "p1", Quantity: 1, UnitPrice: 10}
		s.SyncItemAdded("sess", "cust1", item)
		<-api.addAcked

		api.mu.Lock()
		api.updErr = errors.New("remote down")
		api.mu.Unlock()

		s.SyncQuantity("sess", "cust1", item.Key(), 4)

		require.Eventually(t, func() bool {
			return notifier.count() == 1
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, 0, api.updateCount())
	})
}

func TestWishlistSyncer(t *testing.T) {
	calls := make(chan string, 4)
	w := syncer.NewWishlistSyncer(wishlistFake{calls: calls, err: nil},
		new(fakeNotifier))

	w.SyncWishlistAdded("sess", "cust1", "p1")
	w.SyncWishlistRemoved("sess", "cust1", "p1")

	got := map[string]bool{}
	for range 2 {
		select {
		case c := <-calls:
			got[c] = true
		case <-time.After(time.Second):
			t.Fatal("wishlist call never fired")
		}
	}
	assert.True(t, got["add:p1"])
	assert.True(t, got["remove:p1"])
}

type wishlistFake struct {
	calls chan string
	err   error
}

func (f wishlistFake) AddWishlistItem(
	ctx context.Context, customerID, productID string,
) error {
	f.calls <- "add:" + productID
	return f.err
}

func (f wishlistFake) RemoveWishlistItem(
	ctx context.Context, customerID, productID string,
) error {
	f.calls <- "remove:" + productID
	return f.err
}
