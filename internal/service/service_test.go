package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/deppfellow/booking/internal/lib/job"
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/service"
	"github.com/deppfellow/booking/internal/storeerr"
	"github.com/deppfellow/booking/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func amountPtr(f float64) *model.Amount {
	a := model.Amount(f)
	return &a
}

func newServices(t *testing.T) (*service.Services, *repository.Repositories) {
	t.Helper()

	s, repos := testhelpers.SetupTestServer(t)
	services, err := service.NewServices(s, repos)
	require.NoError(t, err)
	return services, repos
}

func assertCode(t *testing.T, err error, code storeerr.Code, message string) {
	t.Helper()

	var serr *storeerr.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, code, serr.Code)
	assert.Equal(t, message, serr.Message)
}

func TestCatalogService(t *testing.T) {
	ctx := context.Background()

	t.Run("list returns seed services", func(t *testing.T) {
		services, _ := newServices(t)

		list, err := services.Catalog.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, 1, list[0].ID)
		assert.Equal(t, 2, list[1].ID)
	})

	t.Run("create assigns next id and persists", func(t *testing.T) {
		services, repos := newServices(t)

		created, err := services.Catalog.Create(ctx, &model.CreateServicePayload{
			Name: "Room B", Description: "small", Cost: 80,
		})
		require.NoError(t, err)
		assert.Equal(t, model.Service{ID: 3, Name: "Room B", Description: "small", Cost: 80}, *created)

		data, err := repos.Dataset.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, data.Services, 3)
	})

	t.Run("create rejects duplicate name", func(t *testing.T) {
		services, _ := newServices(t)

		_, err := services.Catalog.Create(ctx, &model.CreateServicePayload{
			Name: "חדר ישיבות A", Description: "dup", Cost: 10,
		})
		assertCode(t, err, storeerr.UniqueViolation, "Service with this name already exists")
	})

	t.Run("create rejects missing and zero fields", func(t *testing.T) {
		services, _ := newServices(t)

		_, err := services.Catalog.Create(ctx, &model.CreateServicePayload{Name: "X", Description: "Y"})
		assertCode(t, err, storeerr.Required, "Missing fields")
	})

	t.Run("create rejects negative cost", func(t *testing.T) {
		services, _ := newServices(t)

		_, err := services.Catalog.Create(ctx, &model.CreateServicePayload{Name: "X", Description: "Y", Cost: -1})
		assert.Equal(t, storeerr.Invalid, storeerr.ErrCode(err))
	})

	t.Run("update changes only given fields", func(t *testing.T) {
		services, _ := newServices(t)

		updated, err := services.Catalog.Update(ctx, 2, &model.UpdateServicePayload{Cost: amountPtr(150)})
		require.NoError(t, err)
		assert.Equal(t, "חדר ישיבות A", updated.Name)
		assert.Equal(t, 150.0, updated.Cost)
	})

	t.Run("update may keep its own name", func(t *testing.T) {
		services, _ := newServices(t)

		_, err := services.Catalog.Update(ctx, 2, &model.UpdateServicePayload{Name: strPtr("חדר ישיבות A")})
		assert.NoError(t, err)
	})

	t.Run("update rejects name of another service", func(t *testing.T) {
		services, _ := newServices(t)

		_, err := services.Catalog.Update(ctx, 2, &model.UpdateServicePayload{Name: strPtr("אולם פעילות גדול")})
		assertCode(t, err, storeerr.UniqueViolation, "Service with this name already exists")
	})

	t.Run("update unknown id", func(t *testing.T) {
		services, _ := newServices(t)

		_, err := services.Catalog.Update(ctx, 99, &model.UpdateServicePayload{Name: strPtr("x")})
		assertCode(t, err, storeerr.NotFound, "Service not found")
	})

	t.Run("delete keeps appointments and frees nothing else", func(t *testing.T) {
		services, repos := newServices(t)

		_, err := services.Appointment.Create(ctx, &model.CreateAppointmentPayload{
			Service: model.ServiceRefFromID(1), DateTime: "2025-01-01T10:00", Name: "Dana", Phone: "050",
		})
		require.NoError(t, err)

		require.NoError(t, services.Catalog.Delete(ctx, 1))

		data, err := repos.Dataset.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, data.Services, 1)
		assert.Len(t, data.Appointments, 1)

		err = services.Catalog.Delete(ctx, 1)
		assertCode(t, err, storeerr.NotFound, "Service not found")
	})

	t.Run("id after deleting the highest is reused from max", func(t *testing.T) {
		services, _ := newServices(t)

		require.NoError(t, services.Catalog.Delete(ctx, 2))
		created, err := services.Catalog.Create(ctx, &model.CreateServicePayload{Name: "C", Description: "c", Cost: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, created.ID)
	})
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []job.AppointmentBookedPayload
	err  error
}

func (r *recordingNotifier) EnqueueAppointmentBooked(ctx context.Context, p job.AppointmentBookedPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, p)
	return r.err
}

func newAppointmentService(t *testing.T, notifier service.BookingNotifier) (*service.AppointmentService, *server.Server, *repository.Repositories) {
	t.Helper()

	s, repos := testhelpers.SetupTestServer(t)
	return service.NewAppointmentService(s, repos.Dataset, notifier), s, repos
}

func TestAppointmentService(t *testing.T) {
	ctx := context.Background()
	booking := func(dateTime string) *model.CreateAppointmentPayload {
		return &model.CreateAppointmentPayload{
			Service: model.ServiceRefFromID(2), DateTime: dateTime, Name: "Dana", Phone: "050-1234567",
		}
	}

	t.Run("create and list", func(t *testing.T) {
		appts, _, _ := newAppointmentService(t, nil)

		created, err := appts.Create(ctx, booking("2025-01-01T10:00"))
		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)

		list, err := appts.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "2025-01-01T10:00", list[0].DateTime)

		raw, err := json.Marshal(list[0].Service)
		require.NoError(t, err)
		assert.JSONEq(t, `2`, string(raw))
	})

	t.Run("create rejects taken slot", func(t *testing.T) {
		appts, _, _ := newAppointmentService(t, nil)

		_, err := appts.Create(ctx, booking("2025-01-01T10:00"))
		require.NoError(t, err)

		_, err = appts.Create(ctx, booking("2025-01-01T10:00"))
		assertCode(t, err, storeerr.Conflict, "Time slot already taken")
	})

	t.Run("create rejects missing service", func(t *testing.T) {
		appts, _, _ := newAppointmentService(t, nil)

		_, err := appts.Create(ctx, &model.CreateAppointmentPayload{DateTime: "x", Name: "n", Phone: "p"})
		assertCode(t, err, storeerr.Required, "Missing fields")
	})

	t.Run("update moves slot unless taken", func(t *testing.T) {
		appts, _, _ := newAppointmentService(t, nil)

		_, err := appts.Create(ctx, booking("A"))
		require.NoError(t, err)
		second, err := appts.Create(ctx, booking("B"))
		require.NoError(t, err)

		_, err = appts.Update(ctx, second.ID, &model.UpdateAppointmentPayload{DateTime: strPtr("A")})
		assertCode(t, err, storeerr.Conflict, "Time slot already taken")

		updated, err := appts.Update(ctx, second.ID, &model.UpdateAppointmentPayload{
			DateTime: strPtr("B"),
			Name:     strPtr("Noa"),
		})
		require.NoError(t, err)
		assert.Equal(t, "B", updated.DateTime)
		assert.Equal(t, "Noa", updated.Name)
		assert.Equal(t, "050-1234567", updated.Phone)
	})

	t.Run("update and delete unknown id", func(t *testing.T) {
		appts, _, _ := newAppointmentService(t, nil)

		_, err := appts.Update(ctx, 5, &model.UpdateAppointmentPayload{})
		assertCode(t, err, storeerr.NotFound, "Appointment not found")

		err = appts.Delete(ctx, 5)
		assertCode(t, err, storeerr.NotFound, "Appointment not found")
	})

	t.Run("notification carries business and service names", func(t *testing.T) {
		notifier := &recordingNotifier{}
		appts, _, _ := newAppointmentService(t, notifier)

		created, err := appts.Create(ctx, booking("2025-02-02T09:00"))
		require.NoError(t, err)

		require.Len(t, notifier.sent, 1)
		sent := notifier.sent[0]
		assert.Equal(t, "info@room-center.co.il", sent.To)
		assert.Equal(t, "חדר ישיבות A", sent.Service)
		assert.Equal(t, created.ID, sent.AppointmentID)
	})

	t.Run("notification failure does not fail the booking", func(t *testing.T) {
		notifier := &recordingNotifier{err: errors.New("redis down")}
		appts, _, repos := newAppointmentService(t, notifier)

		_, err := appts.Create(ctx, booking("2025-02-02T09:00"))
		require.NoError(t, err)

		data, err := repos.Dataset.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, data.Appointments, 1)
	})

	t.Run("no notification when the slot is taken", func(t *testing.T) {
		notifier := &recordingNotifier{}
		appts, _, _ := newAppointmentService(t, notifier)

		_, err := appts.Create(ctx, booking("X"))
		require.NoError(t, err)
		_, err = appts.Create(ctx, booking("X"))
		require.Error(t, err)

		assert.Len(t, notifier.sent, 1)
	})

	t.Run("concurrent bookings of one slot", func(t *testing.T) {
		appts, _, _ := newAppointmentService(t, nil)

		var wg sync.WaitGroup
		results := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := appts.Create(ctx, booking("2025-03-03T08:00"))
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.Equal(t, storeerr.Conflict, storeerr.ErrCode(err))
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestBusinessService(t *testing.T) {
	ctx := context.Background()
	services, _ := newServices(t)

	profile, err := services.Business.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "03-1234567", profile.Phone)

	_, err = services.Business.Replace(ctx, &model.BusinessProfilePayload{Name: "only name"})
	assertCode(t, err, storeerr.Required, "Missing fields")

	replaced, err := services.Business.Replace(ctx, &model.BusinessProfilePayload{
		Name: "N", Address: "A", Phone: "P", Email: "e@example.com",
	})
	require.NoError(t, err)

	profile, err = services.Business.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, replaced, profile)
}

func TestAdminService(t *testing.T) {
	ctx := context.Background()

	t.Run("login", func(t *testing.T) {
		services, _ := newServices(t)

		user, err := services.Admin.Login(ctx, &model.LoginPayload{Password: model.CredentialFromString("1234")})
		require.NoError(t, err)
		assert.Equal(t, model.AdminUser{Role: "admin", Name: "admin"}, *user)

		_, err = services.Admin.Login(ctx, &model.LoginPayload{Name: model.CredentialFromString("admin"), Password: model.CredentialFromString("1234")})
		require.NoError(t, err)

		_, err = services.Admin.Login(ctx, &model.LoginPayload{Name: model.CredentialFromString("root"), Password: model.CredentialFromString("1234")})
		assertCode(t, err, storeerr.Unauthorized, "Invalid credentials")

		_, err = services.Admin.Login(ctx, &model.LoginPayload{Password: model.CredentialFromString("wrong")})
		assertCode(t, err, storeerr.Unauthorized, "Invalid credentials")
	})

	t.Run("change password", func(t *testing.T) {
		services, _ := newServices(t)

		err := services.Admin.ChangePassword(ctx, &model.ChangePasswordPayload{OldPassword: model.CredentialFromString("1234")})
		assertCode(t, err, storeerr.Required, "oldPassword and newPassword are required")

		err = services.Admin.ChangePassword(ctx, &model.ChangePasswordPayload{OldPassword: model.CredentialFromString("nope"), NewPassword: model.CredentialFromString("x")})
		assertCode(t, err, storeerr.Unauthorized, "Old password incorrect")

		require.NoError(t, services.Admin.ChangePassword(ctx, &model.ChangePasswordPayload{OldPassword: model.CredentialFromString("1234"), NewPassword: model.CredentialFromString("abcd")}))

		_, err = services.Admin.Login(ctx, &model.LoginPayload{Password: model.CredentialFromString("1234")})
		assert.Error(t, err)
		_, err = services.Admin.Login(ctx, &model.LoginPayload{Password: model.CredentialFromString("abcd")})
		assert.NoError(t, err)
	})
}
