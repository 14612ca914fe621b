package main

import (
	"fmt"
	"log"
	"time"

	"stadiumbooking/internal/config"
	"stadiumbooking/internal/database"
	"stadiumbooking/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedStadium struct {
	name     string
	address  string
	price    int64
	lat, lon float64
}

var stadiums = []seedStadium{
	{"Central Arena", "Abay Ave 48, Almaty", 15000, 43.2389, 76.9286},
	{"Medeu Field", "Gornaya St 465, Almaty", 12000, 43.1575, 77.0589},
	{"Kairat Training Ground", "Satpayev St 29/3, Almaty", 18000, 43.2364, 76.9181},
	{"Astana Dome", "Turan Ave 48, Astana", 20000, 51.1083, 71.4029},
	{"Baikonur Mini-Pitch", "Kabanbay Batyr 60, Astana", 9000, 51.0903, 71.4186},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// Cleanup old data (payments reference bookings, bookings reference stadiums)
	log.Println("Cleaning old data...")
	for _, table := range []string{"payments", "bookings", "stadiums", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s failed: %v", table, err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	mustUser(db, "admin@stadium.kz", "admin123", "Admin", domain.RoleAdmin)

	owners := []domain.User{
		mustUser(db, "aidar@arena.kz", "owner123", "Aidar", domain.RoleOwner),
		mustUser(db, "gulnaz@fields.kz", "owner123", "Gulnaz", domain.RoleOwner),
	}
	players := []domain.User{
		mustUser(db, "asel@mail.kz", "user123", "Asel", domain.RoleUser),
		mustUser(db, "bekzat@gmail.com", "user123", "Bekzat", domain.RoleUser),
		mustUser(db, "dina@yandex.kz", "user123", "Dina", domain.RoleUser),
	}

	// ================== STADIUMS ==================
	log.Println("Creating stadiums...")
	created := make([]domain.Stadium, 0, len(stadiums))
	for i, s := range stadiums {
		st := domain.Stadium{
			OwnerID:      owners[i%len(owners)].ID,
			Name:         s.name,
			Address:      s.address,
			Contact:      fmt.Sprintf("+7701000%04d", i),
			Images:       []string{fmt.Sprintf("/static/stadiums/%d.jpg", i+1)},
			PricePerHour: s.price,
			Latitude:     s.lat,
			Longitude:    s.lon,
			Description:  "Full-size artificial turf, changing rooms, floodlights",
		}
		if err := db.Create(&st).Error; err != nil {
			log.Fatalf("create stadium %q failed: %v", s.name, err)
		}
		created = append(created, st)
	}

	// ================== BOOKINGS ==================
	// Every other day from three days back to a week ahead gets an evening slot;
	// slots on the same stadium never overlap.
	log.Println("Creating bookings...")
	today := domain.DateOf(time.Now())
	count := 0
	for day := -3; day <= 7; day++ {
		date := today.AddDays(day)
		for i, st := range created {
			if (day+i)%2 != 0 {
				continue
			}
			start := 17 + (day+i+6)%4
			b := domain.Booking{
				UserID:    players[(day+i+6)%len(players)].ID,
				StadiumID: st.ID,
				DateAt:    date,
				StartTime: domain.NewTimeOfDay(start, 0, 0),
				EndTime:   domain.NewTimeOfDay(start+2, 0, 0),
				Status:    statusFor(day),
			}
			if err := db.Create(&b).Error; err != nil {
				log.Fatalf("create booking failed: %v", err)
			}
			count++

			if b.Status == domain.BookingFinished {
				p := domain.Payment{
					BookingID:     b.ID,
					Amount:        st.PricePerHour * 2,
					PaymentMethod: domain.PaymentCash,
					Status:        domain.PaymentApproved,
				}
				if err := db.Create(&p).Error; err != nil {
					log.Fatalf("create payment failed: %v", err)
				}
			}
		}
	}

	// A canceled booking leaves its slot free for search and admission.
	canceled := domain.Booking{
		UserID:    players[0].ID,
		StadiumID: created[0].ID,
		DateAt:    today.AddDays(1),
		StartTime: domain.NewTimeOfDay(10, 0, 0),
		EndTime:   domain.NewTimeOfDay(11, 0, 0),
		Status:    domain.BookingCanceled,
	}
	if err := db.Create(&canceled).Error; err != nil {
		log.Fatalf("create booking failed: %v", err)
	}
	count++

	log.Printf("Seed completed: users=%d stadiums=%d bookings=%d", 1+len(owners)+len(players), len(created), count)
	log.Println("Credentials: admin@stadium.kz/admin123, owners */owner123, players */user123")
}

func mustUser(db *gorm.DB, email, password, name string, role domain.UserRole) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password failed: %v", err)
	}
	u := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    name,
		Role:         role,
		Verified:     true,
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatalf("create user %s failed: %v", email, err)
	}
	return u
}

func statusFor(day int) domain.BookingStatus {
	switch {
	case day < 0:
		return domain.BookingFinished
	case day == 0:
		return domain.BookingContinuing
	default:
		return domain.BookingNotStarted
	}
}
