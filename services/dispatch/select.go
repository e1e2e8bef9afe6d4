package dispatch

import "tweetgram/models/posts"

const downloadingStatus = "Downloading video ..."

// Select chooses the output shape from the resolved media.
func Select(set posts.MediaSet, caption string) Plan {
	switch {
	case len(set.Images) == 1:
		return Plan{Shape: ShapePhoto, Caption: caption, Images: set.Images}
	case len(set.Images) > 1:
		return Plan{Shape: ShapeGallery, Caption: caption, Images: set.Images}
	case set.Video != "":
		return Plan{Shape: ShapeVideo, Caption: caption, Video: set.Video}
	default:
		return Plan{Shape: ShapeText, Caption: caption}
	}
}
