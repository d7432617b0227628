package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"tripweaver/services"
)

var DB *sql.DB

// ─── Models ──────────────────────────────────────────────────────────────────

// Trip is the persisted aggregate of one planned journey. The four cost
// fields are a denormalized copy of the itinerary's budget breakdown for
// query convenience. Trips are created and deleted; there is no update.
type Trip struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	Origin         string             `json:"origin"`
	Destination    string             `json:"destination"`
	StartDate      string             `json:"start_date"`
	EndDate        string             `json:"end_date"`
	Budget         float64            `json:"budget"`
	Itinerary      services.Itinerary `json:"itinerary"`
	TransportCost  float64            `json:"transport_cost"`
	StayCost       float64            `json:"stay_cost"`
	FoodCost       float64            `json:"food_cost"`
	ActivitiesCost float64            `json:"activities_cost"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

func InitDB() {
	dsn := buildDSN()

	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// The hosted database may take a moment to accept connections.
	for i := 0; i < 10; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		log.Printf("Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database after retries: %v", err)
	}

	migrate()
	log.Println("Database connected and migrated")
}

func buildDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "tripweaver")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslmode)
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS trips (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			origin          TEXT NOT NULL,
			destination     TEXT NOT NULL,
			start_date      TEXT NOT NULL,
			end_date        TEXT NOT NULL,
			budget          NUMERIC(12,2) NOT NULL,
			itinerary_json  TEXT NOT NULL,
			transport_cost  NUMERIC(12,2) NOT NULL,
			stay_cost       NUMERIC(12,2) NOT NULL,
			food_cost       NUMERIC(12,2) NOT NULL,
			activities_cost NUMERIC(12,2) NOT NULL,
			created_at      TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_trips_user_id
			ON trips(user_id)`,

		`CREATE INDEX IF NOT EXISTS idx_trips_created_at
			ON trips(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			log.Fatalf("Migration failed: %v\nSQL: %s", err, m)
		}
	}
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func SaveTrip(t *Trip) error {
	itineraryJSON, err := json.Marshal(t.Itinerary)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}

	_, err = DB.Exec(`
		INSERT INTO trips (id, user_id, origin, destination, start_date, end_date,
			budget, itinerary_json, transport_cost, stay_cost, food_cost, activities_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.UserID, t.Origin, t.Destination, t.StartDate, t.EndDate,
		t.Budget, string(itineraryJSON), t.TransportCost, t.StayCost, t.FoodCost, t.ActivitiesCost)
	if err != nil {
		return &services.PersistenceError{Op: "save trip", Err: err}
	}
	return nil
}

func GetTrip(id string) (*Trip, error) {
	t := &Trip{}
	var itineraryJSON string
	err := DB.QueryRow(`
		SELECT id, user_id, origin, destination, start_date, end_date,
			budget, itinerary_json, transport_cost, stay_cost, food_cost, activities_cost, created_at
		FROM trips WHERE id = $1`, id).
		Scan(&t.ID, &t.UserID, &t.Origin, &t.Destination, &t.StartDate, &t.EndDate,
			&t.Budget, &itineraryJSON, &t.TransportCost, &t.StayCost, &t.FoodCost,
			&t.ActivitiesCost, &t.CreatedAt)
	if err != nil {
		return nil, &services.PersistenceError{Op: "get trip", Err: err}
	}
	if err := json.Unmarshal([]byte(itineraryJSON), &t.Itinerary); err != nil {
		return nil, &services.PersistenceError{Op: "get trip", Err: fmt.Errorf("unmarshal itinerary: %w", err)}
	}
	return t, nil
}

func ListTripsByUser(userID string) ([]Trip, error) {
	rows, err := DB.Query(`
		SELECT id, user_id, origin, destination, start_date, end_date,
			budget, itinerary_json, transport_cost, stay_cost, food_cost, activities_cost, created_at
		FROM trips WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, &services.PersistenceError{Op: "list trips", Err: err}
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		var t Trip
		var itineraryJSON string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Origin, &t.Destination, &t.StartDate, &t.EndDate,
			&t.Budget, &itineraryJSON, &t.TransportCost, &t.StayCost, &t.FoodCost,
			&t.ActivitiesCost, &t.CreatedAt); err != nil {
			return nil, &services.PersistenceError{Op: "list trips", Err: err}
		}
		if err := json.Unmarshal([]byte(itineraryJSON), &t.Itinerary); err != nil {
			return nil, &services.PersistenceError{Op: "list trips", Err: fmt.Errorf("unmarshal itinerary for trip %s: %w", t.ID, err)}
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &services.PersistenceError{Op: "list trips", Err: err}
	}
	return trips, nil
}

// DeleteTrip removes a trip owned by the given user. When no matching trip
// exists (which also covers attempts to delete someone else's trip), the
// returned error wraps sql.ErrNoRows.
func DeleteTrip(id, userID string) error {
	res, err := DB.Exec(`DELETE FROM trips WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return &services.PersistenceError{Op: "delete trip", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &services.PersistenceError{Op: "delete trip", Err: err}
	}
	if n == 0 {
		return &services.PersistenceError{Op: "delete trip", Err: sql.ErrNoRows}
	}
	return nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
