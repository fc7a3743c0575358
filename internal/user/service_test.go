package user_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/allowance-management/internal"
	"github.com/frahmantamala/allowance-management/internal/auth"
	"github.com/frahmantamala/allowance-management/internal/core/events"
	"github.com/frahmantamala/allowance-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type MockRepository struct {
	users  map[int64]*user.User
	nextID int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{users: make(map[int64]*user.User), nextID: 1}
}

func (m *MockRepository) GetAll() ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *MockRepository) GetByID(id int64) (*user.User, error) {
	return m.users[id], nil
}

func (m *MockRepository) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByRole(role auth.Role) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockRepository) Create(u *user.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) Update(u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *MockRepository
		service *user.Service
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(repo, events.NewEventBus(slogger), 4, slogger)
	})

	Describe("Create", func() {
		It("creates a user with a hashed password", func() {
			u, err := service.Create(&user.CreateUserDTO{
				FullName: "Abebe Kebede",
				Email:    "Abebe@Example.com",
				Password: "s3cret-pass",
				Role:     "employee",
			}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("abebe@example.com"))
			Expect(u.Role).To(Equal(auth.RoleEmployee))
			Expect(u.PasswordHash).NotTo(BeEmpty())
			Expect(u.PasswordHash).NotTo(Equal("s3cret-pass"))
			Expect(auth.VerifyPassword(u.PasswordHash, "s3cret-pass")).To(Succeed())
		})

		It("rejects a duplicate email", func() {
			_, err := service.Create(&user.CreateUserDTO{
				FullName: "Abebe Kebede", Email: "abebe@example.com",
				Password: "s3cret-pass", Role: "EMPLOYEE",
			}, 1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(&user.CreateUserDTO{
				FullName: "Other Person", Email: "abebe@example.com",
				Password: "s3cret-pass", Role: "EMPLOYEE",
			}, 1)
			Expect(err).To(MatchError(user.ErrDuplicateEmail))
		})

		It("rejects a malformed email", func() {
			_, err := service.Create(&user.CreateUserDTO{
				FullName: "Abebe", Email: "not-an-email",
				Password: "s3cret-pass", Role: "EMPLOYEE",
			}, 1)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("rejects an unknown role", func() {
			_, err := service.Create(&user.CreateUserDTO{
				FullName: "Abebe", Email: "abebe@example.com",
				Password: "s3cret-pass", Role: "SUPERUSER",
			}, 1)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a short password", func() {
			_, err := service.Create(&user.CreateUserDTO{
				FullName: "Abebe", Email: "abebe@example.com",
				Password: "short", Role: "EMPLOYEE",
			}, 1)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Employees", func() {
		It("returns only employee accounts", func() {
			for _, fixture := range []user.CreateUserDTO{
				{FullName: "Admin One", Email: "admin@example.com", Password: "password1", Role: "ADMIN"},
				{FullName: "Finance One", Email: "finance@example.com", Password: "password1", Role: "FINANCE"},
				{FullName: "Worker One", Email: "worker1@example.com", Password: "password1", Role: "EMPLOYEE"},
				{FullName: "Worker Two", Email: "worker2@example.com", Password: "password1", Role: "EMPLOYEE"},
			} {
				dto := fixture
				_, err := service.Create(&dto, 1)
				Expect(err).NotTo(HaveOccurred())
			}

			employees, err := service.Employees()
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(2))
			for _, e := range employees {
				Expect(e.Role).To(Equal(auth.RoleEmployee))
			}
		})
	})

	Describe("Update", func() {
		It("keeps the password when none is supplied", func() {
			created, err := service.Create(&user.CreateUserDTO{
				FullName: "Abebe", Email: "abebe@example.com",
				Password: "s3cret-pass", Role: "EMPLOYEE",
			}, 1)
			Expect(err).NotTo(HaveOccurred())
			oldHash := created.PasswordHash

			updated, err := service.Update(created.ID, &user.UpdateUserDTO{
				FullName: "Abebe Kebede", Email: "abebe@example.com", Role: "EMPLOYEE",
			}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.PasswordHash).To(Equal(oldHash))
			Expect(updated.FullName).To(Equal("Abebe Kebede"))
		})

		It("refuses taking another user's email", func() {
			_, err := service.Create(&user.CreateUserDTO{
				FullName: "Abebe", Email: "abebe@example.com",
				Password: "s3cret-pass", Role: "EMPLOYEE",
			}, 1)
			Expect(err).NotTo(HaveOccurred())

			second, err := service.Create(&user.CreateUserDTO{
				FullName: "Marta", Email: "marta@example.com",
				Password: "s3cret-pass", Role: "EMPLOYEE",
			}, 1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(second.ID, &user.UpdateUserDTO{
				FullName: "Marta", Email: "abebe@example.com", Role: "EMPLOYEE",
			}, 1)
			Expect(err).To(MatchError(user.ErrDuplicateEmail))
		})
	})

	Describe("Delete", func() {
		It("returns not found for a missing user", func() {
			Expect(service.Delete(42, 1)).To(MatchError(user.ErrNotFound))
		})
	})
})
