//go:build unit

package commands_test

import (
	"context"
	"time"

	"shareit/internal/infra/memory"
	"shareit/internal/pkg/clock"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/shared"

	"github.com/stretchr/testify/suite"
)

var day0 = time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

func at(days float64) time.Time {
	return day0.Add(time.Duration(days * float64(24*time.Hour)))
}

type fixture struct {
	suite.Suite
	ctx   context.Context
	uow   shared.UnitOfWork
	clock *clock.MockClock

	users    commands.UserCommands
	items    commands.ItemCommands
	bookings commands.BookingCommands
	requests commands.RequestCommands
}

func (f *fixture) SetupTest() {
	f.ctx = context.Background()
	f.uow = memory.NewUnitOfWork(memory.NewStore())
	f.clock = clock.NewMockClock(day0)

	f.users = commands.NewUserUseCase(f.uow)
	f.items = commands.NewItemUseCase(f.uow, f.clock)
	f.bookings = commands.NewBookingUseCase(f.uow)
	f.requests = commands.NewRequestUseCase(f.uow, f.clock)
}

func (f *fixture) mustUser(name, email string) int64 {
	id, err := f.users.Create(f.ctx, commands.CreateUserInput{Name: name, Email: email})
	f.Require().NoError(err)
	return id
}

func (f *fixture) mustItem(ownerID int64, available bool) int64 {
	id, err := f.items.Create(f.ctx, ownerID, commands.CreateItemInput{
		Name:        "Drill",
		Description: "Cordless drill",
		Available:   available,
	})
	f.Require().NoError(err)
	return id
}

func (f *fixture) mustBooking(bookerID, itemID int64, from, to float64) int64 {
	id, err := f.bookings.Create(f.ctx, bookerID, commands.CreateBookingInput{ItemID: itemID, Start: at(from), End: at(to)})
	f.Require().NoError(err)
	return id
}
