package store

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenboard/internal/platform/dynamo/dynamotest"
	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
)

func TestWidgetItemPayload(t *testing.T) {
	t.Run("data widgets omit src", func(t *testing.T) {
		w := &models.Widget{ID: id.NewWidgetID(), ScreenID: id.NewScreenID()}
		w.SetType(models.WidgetBarGraph)

		item, err := attributevalue.MarshalMap(widgetToItem(w))
		require.NoError(t, err)
		_, hasSrc := item["src"]
		assert.False(t, hasSrc)
		assert.Contains(t, item, "values")
	})

	t.Run("link widgets keep an empty src", func(t *testing.T) {
		w := &models.Widget{ID: id.NewWidgetID(), ScreenID: id.NewScreenID()}
		w.SetType("iframe")

		item, err := attributevalue.MarshalMap(widgetToItem(w))
		require.NoError(t, err)
		assert.Contains(t, item, "src")
	})
}

func TestDynamoCascadeEmptiesTables(t *testing.T) {
	ctx := context.Background()
	api := dynamotest.New()
	st := NewDynamo(api, testTables)
	owner := id.NewUserID()

	sol := &models.Solution{ID: id.NewSolutionID(), UserID: owner, Name: "sol"}
	require.NoError(t, st.CreateSolution(ctx, sol))
	for range 3 {
		sc := &models.Screen{ID: id.NewScreenID(), SolutionID: sol.ID, Name: "screen"}
		require.NoError(t, st.CreateScreen(ctx, sc))
		w := &models.Widget{ID: id.NewWidgetID(), ScreenID: sc.ID, Name: "w", Type: models.WidgetCard}
		require.NoError(t, st.CreateWidget(ctx, w))
	}
	require.Equal(t, 3, api.Len(testTables.Widgets))

	require.NoError(t, st.DeleteOwnedBy(ctx, owner))

	assert.Equal(t, 0, api.Len(testTables.Solutions))
	assert.Equal(t, 0, api.Len(testTables.Screens))
	assert.Equal(t, 0, api.Len(testTables.Widgets))
}
