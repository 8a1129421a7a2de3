package boardapimodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoardDataValidate(t *testing.T) {
	t.Run(`запрос с одной вакансией в старом формате check`, func(t *testing.T) {
		data := BoardData{
			BoardName: "Комиссия",
			BoardDate: time.Now(),
			JobID:     10,
		}
		require.Nil(t, data.Validate())
		require.Equal(t, []int{10}, data.EffectiveJobIDs())
	})

	t.Run(`список вакансий в приоритете над скаляром check`, func(t *testing.T) {
		data := BoardData{
			BoardName: "Комиссия",
			BoardDate: time.Now(),
			JobID:     99,
			JobIDs:    []int{10, 11},
		}
		require.Nil(t, data.Validate())
		require.Equal(t, []int{10, 11}, data.EffectiveJobIDs())
	})

	t.Run(`без вакансий check`, func(t *testing.T) {
		data := BoardData{
			BoardName: "Комиссия",
			BoardDate: time.Now(),
		}
		require.NotNil(t, data.Validate())
	})

	t.Run(`без названия check`, func(t *testing.T) {
		data := BoardData{
			BoardDate: time.Now(),
			JobIDs:    []int{10},
		}
		require.NotNil(t, data.Validate())
	})
}
