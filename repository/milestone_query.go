package repository

import "impactsTracker/models"

// FoldMilestoneRows reshapes join rows, ordered by category then item, into
// nested categories. A category starts whenever the category id changes; a
// row without an item adds the category only.
func FoldMilestoneRows(rows []models.MilestoneRow) []models.MilestoneCategory {
	out := []models.MilestoneCategory{}
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].ID != row.CategoryID {
			out = append(out, models.MilestoneCategory{
				ID:           row.CategoryID,
				Name:         row.CategoryName,
				DisplayOrder: row.CategoryOrder,
				Items:        []models.MilestoneItem{},
			})
		}
		if row.ItemID == nil {
			continue
		}
		cur := &out[len(out)-1]
		item := models.MilestoneItem{
			ID:          *row.ItemID,
			LinkURL:     row.ItemLinkURL,
			LinkText:    row.ItemLinkText,
			Completed:   row.Completed,
			CompletedAt: row.CompletedAt,
			Notes:       row.Notes,
		}
		if row.ItemTitle != nil {
			item.Title = *row.ItemTitle
		}
		if row.ItemDescription != nil {
			item.Description = *row.ItemDescription
		}
		if row.ItemDisplayOrder != nil {
			item.DisplayOrder = *row.ItemDisplayOrder
		}
		cur.Items = append(cur.Items, item)
	}
	return out
}
