package extract

import "testing"

func TestIsGenuine(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "regular prose paragraph",
			text: "The regulator announced a settlement with the trading platform after a lengthy investigation.",
			want: true,
		},
		{
			name: "too short",
			text: "Read on.",
			want: false,
		},
		{
			name: "empty",
			text: "",
			want: false,
		},
		{
			name: "pure price ticker",
			text: "$43,250.00 - 2.5% : 1,200",
			want: false,
		},
		{
			name: "cookie banner",
			text: "We use cookie technology to improve your experience on this site.",
			want: false,
		},
		{
			name: "subscription prompt",
			text: "Subscribe to our newsletter to get the best stories delivered daily.",
			want: false,
		},
		{
			name: "related links block",
			text: "Related: Regulators weigh new custody rules for digital assets",
			want: false,
		},
		{
			name: "sponsored disclosure",
			text: "This content is sponsored and does not reflect the views of the editorial team.",
			want: false,
		},
		{
			name: "marker is case-insensitive",
			text: "SIGN UP today and never miss another breaking story from our desk.",
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsGenuine(tc.text); got != tc.want {
				t.Errorf("IsGenuine(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestLooksLikeAuthorBio(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "first person introduction",
			text: "My name is Jane and I cover markets for this publication.",
			want: true,
		},
		{
			name: "birth story",
			text: "I was born in a small town and moved to the city to study journalism.",
			want: true,
		},
		{
			name: "about the author block",
			text: "About the author: Jane has covered digital assets since the early days.",
			want: true,
		},
		{
			name: "social links",
			text: "Follow me on all the usual networks for market commentary.",
			want: true,
		},
		{
			name: "disclaimer block",
			text: "Disclaimer: nothing in this piece constitutes investment advice.",
			want: true,
		},
		{
			name: "case-insensitive match",
			text: "ABOUT THE AUTHOR: a veteran reporter based in London.",
			want: true,
		},
		{
			name: "ordinary article prose",
			text: "The exchange reported record volumes during the first quarter of the year.",
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LooksLikeAuthorBio(tc.text); got != tc.want {
				t.Errorf("LooksLikeAuthorBio(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
