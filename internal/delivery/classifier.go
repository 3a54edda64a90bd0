package delivery

import "fooddelivery/internal/model"

// IsCompleted reports whether s is a terminal delivery status.
func IsCompleted(s model.Status) bool {
	return s == model.StatusCanceled || s == model.StatusFoodDelivered
}

// Classify splits records into active and completed deliveries, keeping the
// input order within each group. Unknown statuses count as active.
func Classify(records []model.DeliveryRecord) (active, completed []model.DeliveryRecord) {
	active = make([]model.DeliveryRecord, 0, len(records))
	completed = make([]model.DeliveryRecord, 0)

	for _, r := range records {
		if IsCompleted(r.Status) {
			completed = append(completed, r)
			continue
		}
		active = append(active, r)
	}
	return active, completed
}
