package usecase

import (
	"context"
	"errors"
	"testing"

	"cine-taquilla/internal/apperrors"
	"cine-taquilla/internal/data/entity"
	"cine-taquilla/internal/dto/request"

	"go.uber.org/zap"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical intervals", 600, 720, 600, 720, true},
		{"candidate inside existing", 620, 700, 600, 720, true},
		{"existing inside candidate", 600, 720, 620, 700, true},
		{"partial overlap left", 580, 620, 600, 720, true},
		{"partial overlap right", 700, 760, 600, 720, true},
		{"one minute overlap", 719, 780, 600, 720, true},
		{"back to back, candidate after", 720, 840, 600, 720, false},
		{"back to back, candidate before", 480, 600, 600, 720, false},
		{"disjoint before", 100, 200, 600, 720, false},
		{"disjoint after", 800, 900, 600, 720, false},
		{"cross midnight vs next slot", 1400, 1520, 1510, 1600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps(%d, %d, %d, %d) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func newFuncionFixture(t *testing.T) (FuncionService, *entity.Movie, *entity.Sala) {
	t.Helper()
	repo := newFakeRepository()

	movie := &entity.Movie{Title: "Inception", DurationInMinutes: 120}
	if err := repo.Movie.Create(context.Background(), movie); err != nil {
		t.Fatalf("create movie: %v", err)
	}
	sala := &entity.Sala{Name: "Sala 1", Capacity: 100, Type: entity.SalaTypeRegular}
	if err := repo.Sala.Create(context.Background(), sala); err != nil {
		t.Fatalf("create sala: %v", err)
	}

	return NewFuncionService(repo, zap.NewNop()), movie, sala
}

func TestCreateFuncionDerivesEndTime(t *testing.T) {
	svc, movie, sala := newFuncionFixture(t)

	resp, err := svc.CreateFuncion(context.Background(), &request.CreateFuncionRequest{
		MovieID:   movie.ID,
		SalaID:    sala.ID,
		StartTime: 600,
	})
	if err != nil {
		t.Fatalf("CreateFuncion: %v", err)
	}
	if resp.EndTime != 720 {
		t.Errorf("EndTime = %d, want 720", resp.EndTime)
	}
	if resp.Duration != 120 {
		t.Errorf("Duration = %d, want 120", resp.Duration)
	}
	if resp.Status != entity.FuncionStatusProgramada {
		t.Errorf("Status = %q, want %q", resp.Status, entity.FuncionStatusProgramada)
	}
}

func TestCreateFuncionCrossesMidnight(t *testing.T) {
	svc, movie, sala := newFuncionFixture(t)

	resp, err := svc.CreateFuncion(context.Background(), &request.CreateFuncionRequest{
		MovieID:   movie.ID,
		SalaID:    sala.ID,
		StartTime: 1400,
	})
	if err != nil {
		t.Fatalf("CreateFuncion: %v", err)
	}
	// 23:20 start with a 120 minute movie ends past midnight; the end time
	// stays on the unbounded line instead of wrapping.
	if resp.EndTime != 1520 {
		t.Errorf("EndTime = %d, want 1520", resp.EndTime)
	}
}

func TestCreateFuncionConflicts(t *testing.T) {
	tests := []struct {
		name         string
		startTime    int
		wantConflict bool
	}{
		{"same slot", 600, true},
		{"overlapping tail", 700, true},
		{"back to back after", 720, false},
		{"back to back before", 480, false},
		{"disjoint", 900, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, movie, sala := newFuncionFixture(t)
			if _, err := svc.CreateFuncion(context.Background(), &request.CreateFuncionRequest{
				MovieID:   movie.ID,
				SalaID:    sala.ID,
				StartTime: 600,
			}); err != nil {
				t.Fatalf("seed funcion: %v", err)
			}

			_, err := svc.CreateFuncion(context.Background(), &request.CreateFuncionRequest{
				MovieID:   movie.ID,
				SalaID:    sala.ID,
				StartTime: tt.startTime,
			})
			if tt.wantConflict {
				if !errors.Is(err, apperrors.ErrSchedulingConflict) {
					t.Errorf("err = %v, want ErrSchedulingConflict", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateFuncionOtherSalaDoesNotConflict(t *testing.T) {
	svc, movie, sala := newFuncionFixture(t)

	if _, err := svc.CreateFuncion(context.Background(), &request.CreateFuncionRequest{
		MovieID: movie.ID, SalaID: sala.ID, StartTime: 600,
	}); err != nil {
		t.Fatalf("seed funcion: %v", err)
	}

	// Same slot in a different sala is fine.
	sala2 := &entity.Sala{Name: "Sala 2", Capacity: 50, Type: entity.SalaTypeVIP}
	if err := svc.(*funcionService).repo.Sala.Create(context.Background(), sala2); err != nil {
		t.Fatalf("create sala: %v", err)
	}

	if _, err := svc.CreateFuncion(context.Background(), &request.CreateFuncionRequest{
		MovieID: movie.ID, SalaID: sala2.ID, StartTime: 600,
	}); err != nil {
		t.Errorf("CreateFuncion in other sala: %v", err)
	}
}

func TestUpdateFuncionExcludesItself(t *testing.T) {
	svc, movie, sala := newFuncionFixture(t)

	created, err := svc.CreateFuncion(context.Background(), &request.CreateFuncionRequest{
		MovieID: movie.ID, SalaID: sala.ID, StartTime: 600,
	})
	if err != nil {
		t.Fatalf("seed funcion: %v", err)
	}

	// Moving the showing by ten minutes overlaps its own old slot; that must
	// not count as a conflict.
	updated, err := svc.UpdateFuncion(context.Background(), created.ID, &request.UpdateFuncionRequest{
		MovieID: movie.ID, SalaID: sala.ID, StartTime: 610,
	})
	if err != nil {
		t.Fatalf("UpdateFuncion: %v", err)
	}
	if updated.StartTime != 610 || updated.EndTime != 730 {
		t.Errorf("updated slot = [%d, %d), want [610, 730)", updated.StartTime, updated.EndTime)
	}
}

func TestCreateFuncionRejectsBadInput(t *testing.T) {
	svc, movie, sala := newFuncionFixture(t)

	tests := []struct {
		name string
		req  request.CreateFuncionRequest
		want error
	}{
		{"unknown movie", request.CreateFuncionRequest{MovieID: 99, SalaID: sala.ID, StartTime: 600}, apperrors.ErrNotFound},
		{"unknown sala", request.CreateFuncionRequest{MovieID: movie.ID, SalaID: 99, StartTime: 600}, apperrors.ErrNotFound},
		{"start past end of day", request.CreateFuncionRequest{MovieID: movie.ID, SalaID: sala.ID, StartTime: 1440}, apperrors.ErrValidation},
		{"negative start", request.CreateFuncionRequest{MovieID: movie.ID, SalaID: sala.ID, StartTime: -1}, apperrors.ErrValidation},
		{"bad status", request.CreateFuncionRequest{MovieID: movie.ID, SalaID: sala.ID, StartTime: 600, Status: "Pendiente"}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateFuncion(context.Background(), &tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
