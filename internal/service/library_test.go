package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordreader/internal/domain"
	"wordreader/internal/repository/memory"
	"wordreader/internal/testutil"
)

func TestLibraryService_SaveLoad(t *testing.T) {
	library := NewLibraryService(memory.NewKVRepo(), testutil.NewTestLogger())

	rows := [][]string{{" hola ", "hello"}, {"adios", " bye"}}
	require.NoError(t, library.Save(" greetings ", rows))

	loaded, err := library.Load("greetings")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"hola", "hello"}, {"adios", "bye"}}, loaded)

	// saving again overwrites
	require.NoError(t, library.Save("greetings", [][]string{{"uno", "one"}}))
	loaded, err = library.Load("greetings")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"uno", "one"}}, loaded)
}

func TestLibraryService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		call    func(*LibraryService) error
		wantErr error
	}{
		{
			name:    "save without name",
			call:    func(s *LibraryService) error { return s.Save("   ", nil) },
			wantErr: domain.ErrNameRequired,
		},
		{
			name: "load without name",
			call: func(s *LibraryService) error {
				_, err := s.Load("")
				return err
			},
			wantErr: domain.ErrNameRequired,
		},
		{
			name: "load missing table",
			call: func(s *LibraryService) error {
				_, err := s.Load("nothing")
				return err
			},
			wantErr: domain.ErrTableNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			library := NewLibraryService(memory.NewKVRepo(), testutil.NewTestLogger())
			assert.ErrorIs(t, tt.call(library), tt.wantErr)
		})
	}
}

func TestLibraryService_StorageErrors(t *testing.T) {
	mockRepo := new(testutil.MockKeyValueRepository)
	mockRepo.On("Set", "tableLibrary_greetings", `[["hola","hello"]]`).Return(errors.New("disk full"))
	mockRepo.On("Get", "tableLibrary_greetings").Return("", false, errors.New("locked"))
	mockRepo.On("Get", "tableLibrary_broken").Return("not json", true, nil)

	library := NewLibraryService(mockRepo, testutil.NewTestLogger())

	err := library.Save("greetings", [][]string{{"hola", "hello"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, err = library.Load("greetings")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTableNotFound)

	_, err = library.Load("broken")
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}

func TestLibraryService_List(t *testing.T) {
	mockRepo := new(testutil.MockKeyValueRepository)
	mockRepo.On("Keys", TableKeyPrefix).Return([]string{"tableLibrary_verbs", "tableLibrary_animals"}, nil)

	library := NewLibraryService(mockRepo, testutil.NewTestLogger())

	names, err := library.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"animals", "verbs"}, names)
	mockRepo.AssertExpectations(t)
}
