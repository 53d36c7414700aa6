package domain

type Review struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	UserName   string   `json:"userName"`
	UserAvatar string   `json:"userAvatar,omitempty"`
	Rating     int      `json:"rating"` // 1..5
	Likes      int      `json:"likes"`
	Dislikes   int      `json:"dislikes"`
	Comment    string   `json:"comment"`
	Date       string   `json:"date"`
	Images     []string `json:"images,omitempty"`
}

func (r Review) Clone() Review {
	out := r
	out.Images = cloneStrings(r.Images)
	return out
}
