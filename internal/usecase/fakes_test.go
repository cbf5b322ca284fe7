package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"bizbid/internal/domain/entity"
	"bizbid/internal/domain/service"
	"bizbid/pkg/errors"
)

// The fakes below back every usecase test. The bid fake serializes its
// transactional operations on a mutex so concurrency tests observe the same
// atomicity the Firestore adapter provides.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	seq      int
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*entity.Listing{}}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if listing.ID == "" {
		listing.ID = fmt.Sprintf("listing-%d", r.seq)
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *fakeListingRepo) getLocked(id string) (*entity.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(listing)
}

func (r *fakeListingRepo) updateLocked(listing *entity.Listing) error {
	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.UpdatedAt = time.Now()
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) list(filter func(*entity.Listing) bool, limit, offset int) ([]*entity.Listing, int64) {
	var matched []*entity.Listing
	for _, listing := range r.listings {
		if filter(listing) {
			copied := *listing
			matched = append(matched, &copied)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total
}

func (r *fakeListingRepo) ListVerified(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, total := r.list(func(l *entity.Listing) bool { return l.Verified }, limit, offset)
	return items, total, nil
}

func (r *fakeListingRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, total := r.list(func(l *entity.Listing) bool { return true }, limit, offset)
	return items, total, nil
}

func (r *fakeListingRepo) ListPending(ctx context.Context, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, total := r.list(func(l *entity.Listing) bool { return !l.Verified }, limit, offset)
	return items, total, nil
}

func (r *fakeListingRepo) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, total := r.list(func(l *entity.Listing) bool { return l.SellerID == sellerID }, limit, offset)
	return items, total, nil
}

type fakeBidRepo struct {
	mu         sync.Mutex
	bids       map[string]*entity.Bid
	listings   *fakeListingRepo
	seq        int
	failUpdate bool
}

func newFakeBidRepo(listings *fakeListingRepo) *fakeBidRepo {
	return &fakeBidRepo{bids: map[string]*entity.Bid{}, listings: listings}
}

func (r *fakeBidRepo) GetByID(ctx context.Context, id string) (*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bid, ok := r.bids[id]
	if !ok {
		return nil, errors.NotFound("Bid", nil)
	}
	copied := *bid
	return &copied, nil
}

func (r *fakeBidRepo) Update(ctx context.Context, bid *entity.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errors.Internal("Failed to update bid", nil)
	}
	if _, ok := r.bids[bid.ID]; !ok {
		return errors.NotFound("Bid", nil)
	}
	bid.UpdatedAt = time.Now()
	copied := *bid
	r.bids[bid.ID] = &copied
	return nil
}

func (r *fakeBidRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bids, id)
	return nil
}

func (r *fakeBidRepo) ListByListing(ctx context.Context, listingID string) ([]*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bid
	for _, bid := range r.bids {
		if bid.ListingID == listingID {
			copied := *bid
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBidRepo) ListByBidder(ctx context.Context, bidderID string) ([]*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bid
	for _, bid := range r.bids {
		if bid.BidderID == bidderID {
			copied := *bid
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBidRepo) ListWonByBidder(ctx context.Context, bidderID string) ([]*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bid
	for _, bid := range r.bids {
		if bid.BidderID == bidderID && bid.IsWon {
			copied := *bid
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBidRepo) CountByListing(ctx context.Context, listingID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, bid := range r.bids {
		if bid.ListingID == listingID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBidRepo) LatestByBidder(ctx context.Context, listingID, bidderID string) (*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Bid
	for _, bid := range r.bids {
		if bid.ListingID != listingID || bid.BidderID != bidderID {
			continue
		}
		if latest == nil || bid.CreatedAt.After(latest.CreatedAt) {
			latest = bid
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *fakeBidRepo) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, bid := range r.bids {
		if bid.ListingID == listingID {
			delete(r.bids, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeBidRepo) PlaceBid(ctx context.Context, bid *entity.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings.mu.Lock()
	defer r.listings.mu.Unlock()

	listing, err := r.listings.getLocked(bid.ListingID)
	if err != nil {
		return err
	}
	for _, other := range r.bids {
		if other.ListingID == bid.ListingID && other.Status.Winning() {
			return errors.InvalidState("Listing already has an accepted bid", nil)
		}
	}
	if err := checkRaise(listing, bid.Amount); err != nil {
		return err
	}

	r.seq++
	if bid.ID == "" {
		bid.ID = fmt.Sprintf("bid-%d", r.seq)
	}
	now := time.Now()
	bid.Status = entity.BidStatusPending
	bid.IsWon, bid.WonAt = entity.DeriveWonFields(bid.Status, nil, now)
	bid.CreatedAt = now
	bid.UpdatedAt = now
	copied := *bid
	r.bids[bid.ID] = &copied

	listing.HighestBid = bid.Amount
	listing.HighestBidder = bid.BidderID
	return r.listings.updateLocked(listing)
}

func (r *fakeBidRepo) AmendBid(ctx context.Context, bidID string, newAmount float64) (*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings.mu.Lock()
	defer r.listings.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return nil, errors.NotFound("Bid", nil)
	}
	if !bid.Status.Open() {
		return nil, errors.InvalidState("Bid can no longer be amended", nil)
	}

	listing, err := r.listings.getLocked(bid.ListingID)
	if err != nil {
		return nil, err
	}
	if err := checkRaise(listing, newAmount); err != nil {
		return nil, err
	}

	bid.Amount = newAmount
	bid.UpdatedAt = time.Now()

	listing.HighestBid = newAmount
	listing.HighestBidder = bid.BidderID
	if err := r.listings.updateLocked(listing); err != nil {
		return nil, err
	}

	copied := *bid
	return &copied, nil
}

func (r *fakeBidRepo) ResolveListing(ctx context.Context, listingID, winnerBidID string) (*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	winner, ok := r.bids[winnerBidID]
	if !ok || winner.ListingID != listingID {
		return nil, errors.NotFound("Bid", nil)
	}

	for _, bid := range r.bids {
		if bid.ListingID != listingID || !bid.Status.Winning() {
			continue
		}
		if bid.ID == winnerBidID {
			copied := *bid
			return &copied, nil
		}
		return nil, errors.InvalidState("Listing already has an accepted bid", nil)
	}

	now := time.Now()
	if err := winner.Transition(entity.BidStatusWon, now); err != nil {
		return nil, errors.InvalidState("Bid cannot be accepted", err)
	}
	for _, bid := range r.bids {
		if bid.ListingID == listingID && bid.ID != winnerBidID && bid.Status.Open() {
			if err := bid.Transition(entity.BidStatusLost, now); err != nil {
				return nil, err
			}
		}
	}

	copied := *winner
	return &copied, nil
}

func checkRaise(listing *entity.Listing, amount float64) error {
	if amount <= listing.HighestBid {
		return errors.Conflict(fmt.Sprintf("Bid must exceed the current highest bid of %.2f", listing.HighestBid))
	}
	if listing.Auction != nil && listing.HighestBid == 0 && amount < listing.Auction.StartingBid {
		return errors.Conflict(fmt.Sprintf("Bid must meet the starting bid of %.2f", listing.Auction.StartingBid))
	}
	return nil
}

type fakeWishlistRepo struct {
	mu      sync.Mutex
	entries map[string]*entity.WishlistEntry
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{entries: map[string]*entity.WishlistEntry{}}
}

func wishKey(buyerID, listingID string) string {
	return buyerID + "_" + listingID
}

func (r *fakeWishlistRepo) Add(ctx context.Context, entry *entity.WishlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := wishKey(entry.BuyerID, entry.ListingID)
	if _, ok := r.entries[key]; ok {
		return errors.Conflict("Listing is already in the wishlist")
	}
	entry.ID = key
	entry.CreatedAt = time.Now()
	copied := *entry
	r.entries[key] = &copied
	return nil
}

func (r *fakeWishlistRepo) Remove(ctx context.Context, buyerID, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, wishKey(buyerID, listingID))
	return nil
}

func (r *fakeWishlistRepo) Contains(ctx context.Context, buyerID, listingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[wishKey(buyerID, listingID)]
	return ok, nil
}

func (r *fakeWishlistRepo) ListByBuyer(ctx context.Context, buyerID string) ([]*entity.WishlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WishlistEntry
	for _, entry := range r.entries {
		if entry.BuyerID == buyerID {
			copied := *entry
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeWishlistRepo) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for key, entry := range r.entries {
		if entry.ListingID == listingID {
			delete(r.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*entity.Payment
	seq      int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*entity.Payment{}}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if payment.ID == "" {
		payment.ID = fmt.Sprintf("payment-%d", r.seq)
	}
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	copied := *payment
	return &copied, nil
}

func (r *fakePaymentRepo) GetByOrderRef(ctx context.Context, orderRef string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, payment := range r.payments {
		if payment.OrderRef == orderRef {
			copied := *payment
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Payment", nil)
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; !ok {
		return errors.NotFound("Payment", nil)
	}
	payment.UpdatedAt = time.Now()
	copied := *payment
	r.payments[payment.ID] = &copied
	return nil
}

func (r *fakePaymentRepo) ListByPayer(ctx context.Context, payerID string) ([]*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Payment
	for _, payment := range r.payments {
		if payment.PayerID == payerID {
			copied := *payment
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeGateway accepts any signature of the form "sig:<orderRef>:<paymentRef>".
type fakeGateway struct {
	mu     sync.Mutex
	orders []string
}

func (g *fakeGateway) CreateOrder(ctx context.Context, orderRef string, amount float64, notes map[string]string) (*service.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders = append(g.orders, orderRef)
	return &service.GatewayOrder{
		OrderRef: orderRef,
		Amount:   amount,
		Currency: "INR",
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderRef, paymentRef, signature string) error {
	if signature != "sig:"+orderRef+":"+paymentRef {
		return errors.Upstream("Payment signature verification failed", nil)
	}
	return nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	errTo string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail || (m.errTo != "" && m.errTo == to) {
		return errors.Upstream("Failed to send email", nil)
	}
	m.sent = append(m.sent, to)
	return nil
}

type fakeAuthClient struct {
	mu  sync.Mutex
	seq int
}

func (a *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	return fmt.Sprintf("uid-%d", a.seq), nil
}

func (a *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

func (a *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	return "token-" + email, nil
}

// fixture seeds the repos with one user per role and wires every usecase.
type fixture struct {
	users    *fakeUserRepo
	listings *fakeListingRepo
	bids     *fakeBidRepo
	wishlist *fakeWishlistRepo
	payments *fakePaymentRepo
	gateway  *fakeGateway
	mailer   *fakeMailer

	bidUC          *BidUseCase
	auctionUC      *AuctionUseCase
	verificationUC *VerificationUseCase
	wishlistUC     *WishlistUseCase
	paymentUC      *PaymentUseCase
	listingUC      *ListingUseCase
}

const (
	buyerID  = "buyer-1"
	buyer2ID = "buyer-2"
	sellerID = "seller-1"
	adminID  = "admin-1"
	caID     = "ca-1"
)

func newFixture() *fixture {
	users := newFakeUserRepo()
	listings := newFakeListingRepo()
	bids := newFakeBidRepo(listings)
	wishlist := newFakeWishlistRepo()
	payments := newFakePaymentRepo()
	gateway := &fakeGateway{}
	mailer := &fakeMailer{}

	seed := []*entity.User{
		{ID: buyerID, Email: "buyer@example.com", Name: "Buyer One", Role: entity.RoleBuyer},
		{ID: buyer2ID, Email: "buyer2@example.com", Name: "Buyer Two", Role: entity.RoleBuyer},
		{ID: sellerID, Email: "seller@example.com", Name: "Seller", Role: entity.RoleSeller},
		{ID: adminID, Email: "admin@example.com", Name: "Admin", Role: entity.RoleAdmin},
		{ID: caID, Email: "ca@example.com", Name: "Auditor", Role: entity.RoleCA},
	}
	for _, u := range seed {
		users.Create(context.Background(), u)
	}

	return &fixture{
		users:    users,
		listings: listings,
		bids:     bids,
		wishlist: wishlist,
		payments: payments,
		gateway:  gateway,
		mailer:   mailer,

		bidUC:          NewBidUseCase(bids, listings, users),
		auctionUC:      NewAuctionUseCase(bids, listings, users),
		verificationUC: NewVerificationUseCase(listings, bids, wishlist, users),
		wishlistUC:     NewWishlistUseCase(wishlist, listings, bids, users),
		paymentUC:      NewPaymentUseCase(payments, bids, users, gateway),
		listingUC:      NewListingUseCase(listings, users, fakeUploader{}, mailer),
	}
}

type fakeUploader struct{}

func (fakeUploader) UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	return "https://storage.example.com/" + folder + "/file.pdf", nil
}

func (f *fixture) seedListing(verified bool, auction *entity.AuctionWindow) *entity.Listing {
	listing := &entity.Listing{
		SellerID:    sellerID,
		CompanyName: "Acme Manufacturing Pvt Ltd",
		CIN:         "U12345MH2015PTC123456",
		Verified:    verified,
		Auction:     auction,
	}
	f.listings.Create(context.Background(), listing)
	return listing
}
