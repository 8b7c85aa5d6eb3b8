package application

import (
	"fmt"

	"github.com/rotemgl/jars_backend/internal/domain"
)

// moveImage removes the dragged image from its position and reinserts it at
// the target's position, then assigns order = index across the new sequence.
// This is a single-element move, not a swap: everything between the two
// positions shifts by one.
func moveImage(images []domain.CatImage, draggedID, targetID string) ([]domain.CatImage, error) {
	from := indexOf(images, draggedID)
	if from < 0 {
		return nil, fmt.Errorf("image not found: %s", draggedID)
	}
	to := indexOf(images, targetID)
	if to < 0 {
		return nil, fmt.Errorf("image not found: %s", targetID)
	}

	out := make([]domain.CatImage, 0, len(images))
	out = append(out, images[:from]...)
	out = append(out, images[from+1:]...)

	moved := images[from]
	out = append(out[:to], append([]domain.CatImage{moved}, out[to:]...)...)

	for i := range out {
		out[i].Order = i
	}
	return out, nil
}

func indexOf(images []domain.CatImage, id string) int {
	for i, img := range images {
		if img.ID == id {
			return i
		}
	}
	return -1
}
