package ext

import (
	"kingsaver/ext/facebook"
	"kingsaver/ext/instagram"
	"kingsaver/ext/tiktok"
	"kingsaver/ext/twitter"
	"kingsaver/ext/youtube"
	"kingsaver/models"
)

var List = []*models.Platform{
	tiktok.Platform,
	youtube.Platform,
	instagram.Platform,
	facebook.Platform,
	twitter.Platform,
}

func FindByCodeName(codeName string) *models.Platform {
	for _, platform := range List {
		if platform.CodeName == codeName {
			return platform
		}
	}
	return nil
}
