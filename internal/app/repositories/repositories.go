package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	TokenRepository   *TokenRepository
	ProfileRepository *ProfileRepository
	PlanRepository    *PlanRepository
	CourseRepository  *CourseRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		TokenRepository:   NewTokenRepository(db),
		ProfileRepository: NewProfileRepository(db),
		PlanRepository:    NewPlanRepository(db),
		CourseRepository:  NewCourseRepository(db),
	}
}
