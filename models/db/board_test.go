package dbmodels

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestBoardNormalize(t *testing.T) {
	t.Run(`миграция устаревшего скаляра в список check`, func(t *testing.T) {
		rec := Board{JobID: 10}
		rec.Normalize()
		require.Equal(t, pq.Int64Array{10}, rec.JobIDs)
		require.Equal(t, 10, rec.JobID)
	})

	t.Run(`скаляр зеркалирует первый элемент списка check`, func(t *testing.T) {
		rec := Board{JobID: 99, JobIDs: pq.Int64Array{10, 11}}
		rec.Normalize()
		require.Equal(t, 10, rec.JobID)
		require.Equal(t, pq.Int64Array{10, 11}, rec.JobIDs)
	})

	t.Run(`пустая комиссия без вакансий check`, func(t *testing.T) {
		rec := Board{}
		rec.Normalize()
		require.Empty(t, rec.JobIDs)
		require.Equal(t, 0, rec.JobID)
		require.Nil(t, rec.EffectiveJobIDs())
	})
}

func TestBoardEffectiveJobIDs(t *testing.T) {
	t.Run(`список в приоритете над скаляром check`, func(t *testing.T) {
		rec := Board{JobID: 99, JobIDs: pq.Int64Array{10, 11}}
		require.Equal(t, []int{10, 11}, rec.EffectiveJobIDs())
	})

	t.Run(`только устаревший скаляр check`, func(t *testing.T) {
		rec := Board{JobID: 10}
		require.Equal(t, []int{10}, rec.EffectiveJobIDs())
	})
}

func TestCandidateBoardJobID(t *testing.T) {
	applied := 10
	current := 12

	t.Run(`текущая вакансия в приоритете check`, func(t *testing.T) {
		rec := Candidate{AppliedJobID: &applied, CurrentJobID: &current}
		jobID, ok := rec.BoardJobID()
		require.True(t, ok)
		require.Equal(t, 12, jobID)
	})

	t.Run(`вакансия отклика как запасной вариант check`, func(t *testing.T) {
		rec := Candidate{AppliedJobID: &applied}
		jobID, ok := rec.BoardJobID()
		require.True(t, ok)
		require.Equal(t, 10, jobID)
	})

	t.Run(`кандидат без привязки check`, func(t *testing.T) {
		rec := Candidate{}
		_, ok := rec.BoardJobID()
		require.False(t, ok)
	})
}
