package docxtest

import "fmt"

// CoverBlank is width of metadata blanks on Cover page.
const CoverBlank = 23

// Cover returns 22 paragraph cover page: lines 4 and 5 hold title runs,
// lines 15..21 are "label" + blank fields.
func Cover() []string {
	var body []string
	for i := range 22 {
		switch {
		case i == 4 || i == 5:
			body = append(body, Runs("title placeholder", " suffix"))
		case i >= 15:
			body = append(body, Runs("field：", "_______________________"))
		default:
			body = append(body, Para(fmt.Sprintf("cover %d", i), ""))
		}
	}
	return body
}

// AbstractPage returns bilingual abstract pages: Chinese heading, template
// text, keyword line, English title four lines below it, English heading,
// template text and keyword line with label split between runs.
func AbstractPage() []string {
	return []string{
		Para("摘    要", "1"),
		Para("摘要模板文字", ""),
		Para("", ""),
		Runs("关键词：", "词一；词二"),
		Para("", ""),
		Para("", ""),
		Para("", ""),
		Runs("Title: ", "english title placeholder"),
		Para("Abstract", "1"),
		Para("abstract template text", ""),
		Para("", ""),
		Runs("Key", " Words", "：", "kw1; kw2", " trailing"),
	}
}

// TOCTitles lists table of contents entries, one per region heading.
var TOCTitles = []string{"引    言", "正文格式说明", "结    论", "参 考 文 献", "附录A", "修改记录", "致    谢"}

// TOC returns table of contents: heading and one entry per region heading,
// each entry text is "title<TAB>page".
func TOC() []string {
	body := []string{Para("目    录", "")}
	for i, title := range TOCTitles {
		body = append(body, TOCEntry(title, i+1))
	}
	return body
}

// Regions returns headings and boilerplate of regions following table of
// contents.
func Regions() []string {
	return []string{
		Para("引    言", "1"),
		Para("引言模板", ""),
		Para("", ""),
		Para("正文格式说明", "1"),
		Para("格式说明", ""),
		Para("", ""),
		Para("结    论", "1"),
		Para("结论模板 1", ""),
		Para("结论模板 2", ""),
		Para("参 考 文 献", "1"),
		Para("[1] 模板文献", ""),
		Para("", ""),
		Para("附录A", "1"),
		Para("附录模板", ""),
		Para("", ""),
		Para("修改记录", "1"),
		Para("修改记录模板", ""),
		Para("", ""),
		Para("致    谢", "1"),
		Para("致谢模板", ""),
		Para("致谢模板结尾", ""),
	}
}

// Thesis returns complete template body: cover, abstract, table of contents
// and regions.
func Thesis() []string {
	body := Cover()
	body = append(body, AbstractPage()...)
	body = append(body, TOC()...)
	return append(body, Regions()...)
}
