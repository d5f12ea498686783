package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tailorshop/internal/auth"
	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
	"tailorshop/internal/repository"
)

// Demo data sizes.
const (
	SeedTailors   = 10
	SeedCustomers = 40
	SeedBookings  = 50

	// SeedPassword is the login password of every generated account.
	SeedPassword = "password123"
)

var (
	seedFirstNames = []string{
		"Aarav", "Vihaan", "Aditya", "Sai", "Arjun", "Reyansh", "Muhammad", "Rohan", "Krishna", "Ishaan",
		"Zara", "Diya", "Ananya", "Myra", "Aadhya", "Saanvi", "Pari", "Fatima", "Ayesha", "Zoya",
		"Rahul", "Amit", "Suresh", "Ramesh", "Priya", "Sneha", "Kavita", "Anita", "Vikram", "Sanjay",
		"Bilal", "Ahmed", "Mustafa", "Ibrahim", "Yusuf", "Hamza", "Omar", "Ali", "Hassan", "Hussain",
	}
	seedLastNames = []string{
		"Sharma", "Verma", "Gupta", "Malik", "Khan", "Patel", "Singh", "Kumar", "Das", "Rao",
		"Reddy", "Nair", "Iyer", "Siddiqui", "Ansari", "Mirza", "Sheikh", "Pathan", "Chopra", "Mehta",
	}
	seedServiceNames = []string{
		"Pant Stitching", "Shirt Stitching", "Complete Suit", "Kurta Pajama", "Safari Suit", "Sherwani", "Waistcoat", "Blazer",
	}
	seedServiceImages = []string{
		"https://images.unsplash.com/photo-1594938298603-c8148c47e356?auto=format&fit=crop&q=80&w=600",
		"https://images.unsplash.com/photo-1626497764746-6dc36546b388?auto=format&fit=crop&q=80&w=600",
		"https://images.unsplash.com/photo-1473966968600-fa801b869a1a?auto=format&fit=crop&q=80&w=600",
		"https://images.unsplash.com/photo-1589810635657-232948472d98?auto=format&fit=crop&q=80&w=600",
		"https://images.unsplash.com/photo-1559551409-dadc959f76b8?auto=format&fit=crop&q=80&w=600",
	}
	seedCities = []string{"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai", "Pune", "Lucknow", "Jaipur"}
)

// SeedResult reports how many rows a seed run created.
type SeedResult struct {
	Tailors   int `json:"tailors"`
	Customers int `json:"customers"`
	Services  int `json:"services"`
	Bookings  int `json:"bookings"`
}

// SeedService fills an empty database with demo data.
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

type seedService struct {
	users    repository.UserRepository
	bookings repository.BookingRepository
	services repository.ServiceRepository
	rnd      *rand.Rand
	now      func() time.Time
}

// NewSeedService creates a seeder. A nil rnd uses a time-seeded source.
func NewSeedService(
	users repository.UserRepository,
	bookings repository.BookingRepository,
	services repository.ServiceRepository,
	rnd *rand.Rand,
) SeedService {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x7a11))
	}
	return &seedService{users: users, bookings: bookings, services: services, rnd: rnd, now: time.Now}
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// between returns a random int in [lo, hi].
func (s *seedService) between(lo, hi int) int {
	return lo + s.rnd.IntN(hi-lo+1)
}

func (s *seedService) randomName() string {
	return pick(s.rnd, seedFirstNames) + " " + pick(s.rnd, seedLastNames)
}

func (s *seedService) randomPhone() string {
	return fmt.Sprintf("9%d", s.between(100000000, 999999999))
}

// Seed creates tailors, customers, the base services and bookings with
// random statuses. Base services keep fixed IDs so a rerun refreshes them. Non-pending bookings get a random tailor 80% of the time.
// Accounts whose email already exists are reused.
func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	hash, err := auth.HashPassword(SeedPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	res := &SeedResult{}
	now := s.now()

	tailors := make([]*model.User, 0, SeedTailors)
	for i := 0; i < SeedTailors; i++ {
		u := &model.User{
			Name:          s.randomName(),
			Email:         fmt.Sprintf("tailor%d@majeed.com", i+1),
			Role:          model.RoleTailor,
			EmailVerified: true,
			Phone:         s.randomPhone(),
			PasswordHash:  hash,
			Measurements:  model.Measurements{},
			CreatedAt:     now.Add(-time.Duration(s.between(0, 1000000)) * time.Second),
		}
		created, err := s.ensureUser(ctx, u)
		if err != nil {
			return nil, err
		}
		if created {
			res.Tailors++
		}
		tailors = append(tailors, u)
	}

	customers := make([]*model.User, 0, SeedCustomers)
	for i := 0; i < SeedCustomers; i++ {
		name := s.randomName()
		u := &model.User{
			Name:          name,
			Email:         fmt.Sprintf("%s.%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i+1),
			Role:          model.RoleCustomer,
			EmailVerified: s.rnd.Float64() > 0.5,
			Phone:         s.randomPhone(),
			PasswordHash:  hash,
			Measurements:  model.Measurements{},
			CreatedAt:     now.Add(-time.Duration(s.between(0, 1000000)) * time.Second),
		}
		created, err := s.ensureUser(ctx, u)
		if err != nil {
			return nil, err
		}
		if created {
			res.Customers++
		}
		customers = append(customers, u)
	}

	for i, name := range seedServiceNames {
		svc := &model.Service{
			ID:       fmt.Sprintf("service_%d", i),
			Name:     name,
			Price:    fmt.Sprintf("₹%d+", s.between(500, 5000)),
			Desc:     fmt.Sprintf("Premium quality %s with custom fitting and styling options.", strings.ToLower(name)),
			Img:      seedServiceImages[i%len(seedServiceImages)],
			Category: "Men",
		}
		created, err := s.upsertService(ctx, svc)
		if err != nil {
			return nil, err
		}
		if created {
			res.Services++
		}
	}

	statuses := model.AllStatuses()
	for i := 0; i < SeedBookings; i++ {
		customer := pick(s.rnd, customers)
		status := pick(s.rnd, statuses)
		appointment := model.AppointmentVisit
		if s.rnd.Float64() > 0.5 {
			appointment = model.AppointmentPickup
		}
		b := &model.Booking{
			UserID:               &customer.ID,
			CustomerName:         customer.Name,
			Phone:                customer.Phone,
			Address:              fmt.Sprintf("%d, Block %s, %s", s.between(1, 100), pick(s.rnd, []string{"A", "B", "C"}), pick(s.rnd, seedCities)),
			ServiceType:          pick(s.rnd, model.ServiceTypes),
			AppointmentType:      appointment,
			Date:                 now.AddDate(0, 0, s.between(-10, 10)).Format(model.DateLayout),
			Notes:                "Demo booking notes",
			Status:               status,
			MeasurementsSnapshot: model.Measurements{},
			ReferenceImages:      []string{},
			Cost:                 decimal.Zero,
			CreatedAt:            now.Add(-time.Duration(s.between(0, 500000)) * time.Second),
		}
		if status != model.StatusPending && s.rnd.Float64() > 0.2 {
			tailor := pick(s.rnd, tailors)
			b.AssignedTo = &tailor.ID
			b.AssignedName = &tailor.Name
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			return nil, fmt.Errorf("create booking: %w", err)
		}
		res.Bookings++
	}

	return res, nil
}

// upsertService writes svc under its fixed ID, overwriting an earlier seed.
// It reports whether the row is new.
func (s *seedService) upsertService(ctx context.Context, svc *model.Service) (bool, error) {
	_, err := s.services.FindByID(ctx, svc.ID)
	isNew := errors.Is(err, apperrors.ErrServiceNotFound)
	if err != nil && !isNew {
		return false, fmt.Errorf("find service: %w", err)
	}
	if err := s.services.Upsert(ctx, svc); err != nil {
		return false, fmt.Errorf("upsert service: %w", err)
	}
	return isNew, nil
}

// ensureUser creates u unless its email is taken, in which case u is
// replaced by the stored user. It reports whether a row was created.
func (s *seedService) ensureUser(ctx context.Context, u *model.User) (bool, error) {
	existing, err := s.users.FindByEmail(ctx, u.Email)
	if err == nil {
		*u = *existing
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return false, fmt.Errorf("find user: %w", err)
	}
	if err := s.users.Create(ctx, u); err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	return true, nil
}
