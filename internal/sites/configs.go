package sites

const defaultMaxItems = 30

var registry = map[string]SelectorConfig{
	"coindesk": {
		ID:      "coindesk",
		BaseURL: "https://www.coindesk.com/latest-crypto-news",
		Listing: ListingSelectors{
			Container:   "div[data-module-name='latest-news']",
			Item:        "div.articleTextSection",
			Title:       "h2 a, h3 a",
			Description: "p.content-text",
			Category:    "a.category",
			Author:      "div.ac-author span",
			Date:        "div.timing-data span",
			Link:        "h2 a, h3 a",
			Image:       "img",
		},
		Article: ArticleSelectors{
			Content:  "div.document-body p",
			Title:    "h1",
			Subtitle: "h2.subheadline",
			Author:   "div.at-authors a",
			Date:     "div.at-created span",
			Tags:     "div.tags a",
		},
		MaxItems:        defaultMaxItems,
		ConsentSelector: "#onetrust-accept-btn-handler",
	},
	"cointelegraph": {
		ID:      "cointelegraph",
		BaseURL: "https://cointelegraph.com/",
		Listing: ListingSelectors{
			Container:   "ul[data-testid='posts-listing__list']",
			Item:        "li[data-testid='posts-listing__item']",
			Title:       "span[data-testid='post-card-title']",
			Description: "p[data-testid='post-card-preview-text']",
			Category:    "span[data-testid='post-card-badge']",
			Author:      "p[data-testid='post-card-author'] a",
			Date:        "time",
			Link:        "a[data-testid='post-card-link']",
			Image:       "img[data-testid='post-card-image']",
		},
		Article: ArticleSelectors{
			Content: "div[data-testid='post-content'] p",
			Title:   "h1[data-testid='post-title']",
			Author:  "div[data-testid='post-author'] a",
			Date:    "time",
			Tags:    "div[data-testid='post-tags'] a",
		},
		MaxItems:     defaultMaxItems,
		ScrollRounds: 2,
	},
	"decrypt": {
		ID:      "decrypt",
		BaseURL: "https://decrypt.co/news",
		Listing: ListingSelectors{
			Container:   "main",
			Item:        "article",
			Title:       "h3 a span, h4 a span",
			Description: "p.line-clamp-3",
			Category:    "a[href^='/news/']:first-of-type",
			Author:      "a[href^='/author/']",
			Date:        "time",
			Link:        "h3 a, h4 a",
			Image:       "img",
		},
		Article: ArticleSelectors{
			Content:  "div.post-content p",
			Title:    "h1",
			Subtitle: "h2.subtitle",
			Author:   "a[href^='/author/']",
			Date:     "time",
		},
		MaxItems:     defaultMaxItems,
		ScrollRounds: 3,
	},
	"theblock": {
		ID:      "theblock",
		BaseURL: "https://www.theblock.co/latest",
		Listing: ListingSelectors{
			Container:   "div.collection__articles",
			Item:        "article.articleCard",
			Title:       "h2 span",
			Description: "p.articleCard__deck",
			Category:    "div.meta__tag a",
			Author:      "div.meta__author a",
			Date:        "div.meta__date",
			Link:        "a.appLink",
			Image:       "img",
		},
		Article: ArticleSelectors{
			Content:  "div#articleContent span.copy p",
			Title:    "h1",
			Subtitle: "div.articleDeck",
			Author:   "div.articleByline a",
			Date:     "div.timestamp",
		},
		MaxItems: defaultMaxItems,
	},
	"bitcoinmagazine": {
		ID:      "bitcoinmagazine",
		BaseURL: "https://bitcoinmagazine.com/articles",
		Listing: ListingSelectors{
			Container:   "div.phoenix-hub-page-body",
			Item:        "article.m-card",
			Title:       "h2.m-card--header-text a",
			Description: "p.m-card--description",
			Category:    "a.m-card--section",
			Author:      "span.m-card--byline a",
			Date:        "time",
			Link:        "h2.m-card--header-text a",
			Image:       "img.m-card--image",
		},
		Article: ArticleSelectors{
			Content: "div.m-detail--body p",
			Title:   "h1.m-detail-header--title",
			Author:  "span.m-detail-header--meta-author",
			Date:    "time",
			Tags:    "a.m-tag",
		},
		MaxItems: defaultMaxItems,
	},
	"cryptoslate": {
		ID:      "cryptoslate",
		BaseURL: "https://cryptoslate.com/news/",
		Listing: ListingSelectors{
			Container:   "div.news-feed",
			Item:        "div.list-post",
			Title:       "h2",
			Description: "p.excerpt",
			Category:    "span.post-category",
			Author:      "span.author-name",
			Date:        "span.post-time",
			Link:        "a.post-card-link",
			Image:       "img",
		},
		Article: ArticleSelectors{
			Content:  "article.full-article p",
			Title:    "h1.post-title",
			Subtitle: "div.post-subtitle",
			Author:   "div.author-info a",
			Date:     "div.post-date",
			Tags:     "div.post-tags a",
		},
		MaxItems: defaultMaxItems,
	},
	"beincrypto": {
		ID:      "beincrypto",
		BaseURL: "https://beincrypto.com/news/",
		Listing: ListingSelectors{
			Container:   "div[data-el='bic-c-news-big']",
			Item:        "div[data-el='bic-c-news-card']",
			Title:       "h5 a",
			Description: "p.s2",
			Category:    "a[data-el='bic-c-badge']",
			Author:      "div.byline a",
			Date:        "time",
			Link:        "h5 a",
			Image:       "img",
		},
		Article: ArticleSelectors{
			Content: "div.entry-content-inner p",
			Title:   "h1.h4",
			Author:  "div.entry-author a",
			Date:    "time.entry-date",
			Tags:    "div.entry-tags a",
		},
		MaxItems:        defaultMaxItems,
		ConsentSelector: "button#cookie-consent-accept",
	},
	"blockworks": {
		ID:      "blockworks",
		BaseURL: "https://blockworks.co/news",
		Listing: ListingSelectors{
			Container:   "div.flex.flex-col.gap-6",
			Item:        "div.flex.gap-4.border-b",
			Title:       "a.font-headline",
			Description: "p.text-gray-600",
			Category:    "a[href^='/category/']",
			Author:      "a[href^='/author/']",
			Date:        "time",
			Link:        "a.font-headline",
			Image:       "img",
		},
		Article: ArticleSelectors{
			Content:  "div.article-content p",
			Title:    "h1",
			Subtitle: "p.article-excerpt",
			Author:   "a[href^='/author/']",
			Date:     "time",
		},
		MaxItems: defaultMaxItems,
	},
	"cryptonews": {
		ID:      "cryptonews",
		BaseURL: "https://cryptonews.com/news/",
		Listing: ListingSelectors{
			Container:   "div.category-news",
			Item:        "div.article__item",
			Title:       "a.article__title",
			Description: "div.article__description",
			Category:    "a.article__badge",
			Author:      "div.article-author a",
			Date:        "time.article__date",
			Link:        "a.article__title",
			Image:       "img.article__img",
		},
		Article: ArticleSelectors{
			Content: "div.article-single__content p",
			Title:   "h1.mb-10",
			Author:  "div.author-block a",
			Date:    "time",
			Tags:    "div.tags-block a",
		},
		MaxItems: defaultMaxItems,
	},
	"newsbtc": {
		ID:      "newsbtc",
		BaseURL: "https://www.newsbtc.com/news/",
		Listing: ListingSelectors{
			Container:   "div.jeg_posts",
			Item:        "article.jeg_post",
			Title:       "h3.jeg_post_title a",
			Description: "div.jeg_post_excerpt p",
			Category:    "div.jeg_post_category a",
			Author:      "div.jeg_meta_author a",
			Date:        "div.jeg_meta_date a",
			Link:        "h3.jeg_post_title a",
			Image:       "div.jeg_thumb img",
		},
		Article: ArticleSelectors{
			Content: "div.content-inner p",
			Title:   "h1.jeg_post_title",
			Author:  "div.jeg_meta_author a",
			Date:    "div.jeg_meta_date a",
			Tags:    "div.jeg_post_tags a",
		},
		MaxItems: defaultMaxItems,
	},
	"ambcrypto": {
		ID:      "ambcrypto",
		BaseURL: "https://ambcrypto.com/category/new-news/",
		Listing: ListingSelectors{
			Container:   "div.infinite-content",
			Item:        "article.item-infinite",
			Title:       "h2.entry-title a",
			Description: "div.entry-excerpt p",
			Category:    "span.entry-category a",
			Author:      "span.entry-author a",
			Date:        "time.entry-date",
			Link:        "h2.entry-title a",
			Image:       "img.entry-image",
		},
		Article: ArticleSelectors{
			Content: "div.single-post-content p",
			Title:   "h1.entry-title",
			Author:  "span.author-name a",
			Date:    "time.entry-date",
			Tags:    "div.entry-tags a",
		},
		MaxItems:     defaultMaxItems,
		ScrollRounds: 2,
	},
}
