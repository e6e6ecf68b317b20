package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	AppName        = "排班表管理系统"
	AppVersion     = "1.17.0"
	AppBuildDate   = "2025-05-15"
	AppAuthor      = "杜玛"
	AppLicense     = "MIT"
	AppCopyright   = "© 永久 杜玛"
	AppURL         = "https://github.com/duma520"
	AppDescription = "一个简单易用的排班表管理系统，支持多种功能"
)

const helpMarkdown = `## 排班表管理系统使用说明

1. 首次使用请先**注册账户**，每个账户拥有独立的排班数据文件。
2. 登录后默认显示本月日历，可切换到上一月、下一月。
3. 在日历中选择日期后新建记录，部门与班次会沿用上一次的选择。
4. 列表视图支持按日期范围、姓名或部门关键字、部门筛选。
5. 可以添加自定义部门和班次，班次起止时间留空即为模糊班次。
6. 月历和列表均可导出为 Excel 文件。

| 默认班次 | 时间 |
| --- | --- |
| 早班 | 08:00-16:00 |
| 中班 | 16:00-24:00 |
| 晚班 | 00:00-08:00 |
| 全天班 | 08:00-20:00 |
`

var (
	helpEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	helpSanitizer = bluemonday.UGCPolicy()
)

// About 程序信息
type About struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	BuildDate   string `json:"build_date"`
	Author      string `json:"author"`
	License     string `json:"license"`
	Copyright   string `json:"copyright"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Header      string `json:"header"`
	HelpHTML    string `json:"help_html"`
}

// AppHeader 标准化的一行程序信息
func AppHeader() string {
	return fmt.Sprintf("%s %s | %s License | %s", AppName, AppVersion, AppLicense, AppURL)
}

// LoadAbout 返回程序信息，帮助文本渲染为已清洗的 HTML
func LoadAbout() (About, error) {
	help, err := RenderHelp(helpMarkdown)
	if err != nil {
		return About{}, err
	}

	return About{
		Name:        AppName,
		Version:     AppVersion,
		BuildDate:   AppBuildDate,
		Author:      AppAuthor,
		License:     AppLicense,
		Copyright:   AppCopyright,
		URL:         AppURL,
		Description: AppDescription,
		Header:      AppHeader(),
		HelpHTML:    help,
	}, nil
}

// RenderHelp 将 markdown 渲染为 HTML 并清洗
func RenderHelp(content string) (string, error) {
	var buf bytes.Buffer
	if err := helpEngine.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render help: %w", err)
	}
	return string(helpSanitizer.SanitizeBytes(buf.Bytes())), nil
}
