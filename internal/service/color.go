package service

// Palette 马卡龙色系，按分配顺序排列。
var Palette = []string{
	"#FFB7CE", // 樱花粉
	"#A2E1F6", // 天空蓝
	"#B5EAD7", // 薄荷绿
	"#FFEAA5", // 柠檬黄
	"#C7CEEA", // 薰衣草紫
	"#FFDAC1", // 蜜桃橙
	"#FF9AA2", // 玫瑰粉
	"#E6E6FA", // 淡丁香
	"#D4F1C7", // 苹果绿
	"#FFF8B8", // 奶油黄
	"#D8BFD8", // 香芋紫
	"#F0E6DD", // 焦糖奶霜
}

// ColorAssignment 单个员工的颜色。
type ColorAssignment struct {
	EmployeeName string `json:"employee_name"`
	Color        string `json:"color"`
}

// ColorRegistry 按首次出现顺序为员工分配调色板颜色，超出调色板长度后取模循环复用。
// 生命周期与登录会话一致，自身不加锁，由 Session 串行化访问。
type ColorRegistry struct {
	palette  []string
	assigned map[string]string
	order    []string
}

// NewColorRegistry 使用默认调色板
func NewColorRegistry() *ColorRegistry {
	return NewColorRegistryWithPalette(Palette)
}

// NewColorRegistryWithPalette 使用自定义调色板，空调色板回退到默认值
func NewColorRegistryWithPalette(palette []string) *ColorRegistry {
	if len(palette) == 0 {
		palette = Palette
	}
	return &ColorRegistry{palette: palette, assigned: make(map[string]string)}
}

// ColorFor 返回员工颜色，首次出现时分配下一个颜色。
func (r *ColorRegistry) ColorFor(name string) string {
	if color, ok := r.assigned[name]; ok {
		return color
	}
	color := r.palette[len(r.order)%len(r.palette)]
	r.assigned[name] = color
	r.order = append(r.order, name)
	return color
}

// Seed 按给定顺序登记一批姓名，已登记的保持原色。
func (r *ColorRegistry) Seed(names []string) {
	for _, name := range names {
		r.ColorFor(name)
	}
}

// Legend 按分配顺序返回全部已登记颜色。
func (r *ColorRegistry) Legend() []ColorAssignment {
	legend := make([]ColorAssignment, 0, len(r.order))
	for _, name := range r.order {
		legend = append(legend, ColorAssignment{EmployeeName: name, Color: r.assigned[name]})
	}
	return legend
}

// Reset 清空分配结果
func (r *ColorRegistry) Reset() {
	r.assigned = make(map[string]string)
	r.order = nil
}
