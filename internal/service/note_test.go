package service

import (
	"context"
	"errors"
	"testing"

	"notesapi/internal/model"
	"notesapi/internal/repository"
	repoMocks "notesapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockNoteRepository)
		svc := NewNoteService(mRepo)

		mRepo.On("Create", ctx, &model.Note{Name: "n", Description: "d", Done: true}).
			Return(&model.Note{ID: 1, Name: "n", Description: "d", Done: true}, nil)

		note, err := svc.Create(ctx, "n", "d", true)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), note.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockNoteRepository)
		svc := NewNoteService(mRepo)

		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		note, err := svc.Create(ctx, "n", "d", false)

		assert.EqualError(t, err, "db fail")
		assert.Nil(t, note)
		mRepo.AssertExpectations(t)
	})
}

func TestNoteService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		skip       int
		limit      int
		wantQuery  repository.PageQuery
		repoResult []model.Note
		repoErr    error
	}{
		{
			name:       "happy path",
			skip:       0,
			limit:      10,
			wantQuery:  repository.PageQuery{Limit: 10, Offset: 0},
			repoResult: []model.Note{{ID: 1}, {ID: 2}},
		},
		{
			name:       "zero limit and negative skip use defaults",
			skip:       -5,
			limit:      0,
			wantQuery:  repository.PageQuery{Limit: DefaultLimit, Offset: 0},
			repoResult: []model.Note{},
		},
		{
			name:       "limit is capped",
			skip:       20,
			limit:      1000,
			wantQuery:  repository.PageQuery{Limit: MaxLimit, Offset: 20},
			repoResult: []model.Note{},
		},
		{
			name:      "repository error",
			limit:     10,
			wantQuery: repository.PageQuery{Limit: 10, Offset: 0},
			repoErr:   errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockNoteRepository)
			svc := NewNoteService(mRepo)

			if tt.repoErr != nil {
				mRepo.On("List", ctx, tt.wantQuery).Return(nil, tt.repoErr)
			} else {
				mRepo.On("List", ctx, tt.wantQuery).Return(tt.repoResult, nil)
			}

			res, err := svc.List(ctx, tt.skip, tt.limit)

			if tt.repoErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res, len(tt.repoResult))
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockNoteRepository)
		mRepo.On("FindByID", ctx, int64(4)).Return(&model.Note{ID: 4}, nil)

		note, err := NewNoteService(mRepo).Get(ctx, 4)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), note.ID)
	})

	t.Run("missing is nil without error", func(t *testing.T) {
		mRepo := new(repoMocks.MockNoteRepository)
		mRepo.On("FindByID", ctx, int64(5)).Return(nil, nil)

		note, err := NewNoteService(mRepo).Get(ctx, 5)

		assert.NoError(t, err)
		assert.Nil(t, note)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockNoteRepository)
		mRepo.On("FindByID", ctx, int64(6)).Return(nil, errors.New("db fail"))

		note, err := NewNoteService(mRepo).Get(ctx, 6)

		assert.Error(t, err)
		assert.Nil(t, note)
	})
}
